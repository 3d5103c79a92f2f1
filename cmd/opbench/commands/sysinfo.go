package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opbench/opbench/pkg/sysinfo"
)

func newSysinfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Print the host information stamped into reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := sysinfo.Probe()
			fmt.Printf("os:        %s/%s\n", info.OS, info.Arch)
			fmt.Printf("cpus:      %d\n", info.CPUs)
			if info.CPUModel != "" {
				fmt.Printf("cpu model: %s\n", info.CPUModel)
			}
			if info.MemoryMB > 0 {
				fmt.Printf("memory:    %d MB\n", info.MemoryMB)
			}
			if info.Hostname != "" {
				fmt.Printf("hostname:  %s\n", info.Hostname)
			}
			fmt.Printf("runtime:   %s\n", info.GoVersion)
			return nil
		},
	}

	return cmd
}
