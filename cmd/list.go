// cmd/list.go

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/svcconfig"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_cli"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_io"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/unit"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved service configurations",
	RunE:  sysd_cli.Wrap(runList),
}

func runList(rc *sysd_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)

	store := svcconfig.NewStore()
	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No saved service configurations found.")
		return nil
	}

	log.Debug("Listing saved configurations", zap.Int("count", len(names)))

	fmt.Println("\nSaved service configurations:")
	for i, name := range names {
		templateName := "Unknown"
		if cfg, err := store.Load(name); err == nil && cfg != nil {
			if t, err := unit.Lookup(cfg.Template); err == nil {
				templateName = t.Name
			}
		}
		fmt.Printf("%d) %s - %s\n", i+1, name, templateName)
	}

	// Drill-down is interactive only; scripted callers get the plain listing.
	if !interaction.IsTTY() {
		return nil
	}
	return listDetails(rc, store, names)
}

func listDetails(rc *sysd_io.RuntimeContext, store *svcconfig.Store, names []string) error {
	reader := bufio.NewReader(os.Stdin)

	choice, err := interaction.ReadLine(rc.Ctx, reader, "\nEnter number to view details (or press Enter to cancel)")
	if err != nil || choice == "" {
		return nil
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(names) {
		return nil
	}

	name := names[idx-1]
	cfg, err := store.Load(name)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	fmt.Printf("\n=== %s Configuration ===\n", name)
	fmt.Print(cfg.Summary())

	option, err := interaction.ReadLine(rc.Ctx, reader, "\n[L]oad this config, [P]review service file, or [C]ancel?")
	if err != nil {
		return nil
	}
	switch strings.ToLower(option) {
	case "l":
		fmt.Printf("Load with: sysdeploy create --load %s\n", store.Path(name))
	case "p":
		rendered, err := cfg.Render()
		if err != nil {
			return err
		}
		fmt.Println("\n=== Service File Preview ===")
		fmt.Println(rendered)
		fmt.Println("===========================")
	}
	return nil
}
