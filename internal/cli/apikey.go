package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentscope-io/agentscope/internal/models"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage ingest API keys for the selected project",
}

var keyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List API keys",
	RunE:    runKeyList,
}

var keyCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an API key",
	Long: `Create an API key for the selected project.

The full secret is printed exactly once. The server only ever stores a hash;
afterwards listings show the 8-character prefix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeyCreate,
}

var keyRevokeCmd = &cobra.Command{
	Use:   "revoke [key-id]",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyRevoke,
}

var keyProjectFlag string

func init() {
	keyCmd.PersistentFlags().StringVarP(&keyProjectFlag, "project", "p", "", "project id or name (defaults to the selected project)")

	keyCmd.AddCommand(keyCreateCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keyRevokeCmd)
}

func runKeyList(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	p, err := d.resolveProject(ctx, keyProjectFlag)
	if err != nil {
		return err
	}

	keys, err := d.client.ListAPIKeys(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	if len(keys) == 0 {
		fmt.Printf("No API keys for %s. Run 'agentscope key create' to add one.\n", p.Name)
		return nil
	}

	fmt.Printf("%-12s %-20s %-20s %s\n",
		styleLabel.Render("PREFIX"),
		styleLabel.Render("NAME"),
		styleLabel.Render("CREATED"),
		styleLabel.Render("STATUS"))
	for _, k := range keys {
		status := styleSuccess.Render("active")
		if k.Revoked() {
			status = styleWarning.Render("revoked " + formatTime(*k.RevokedAt))
		}
		fmt.Printf("%-12s %-20s %-20s %s\n",
			k.KeyPrefix, fit(deref(k.Name), 20), formatTime(k.CreatedAt), status)
	}
	return nil
}

func runKeyCreate(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	p, err := d.resolveProject(ctx, keyProjectFlag)
	if err != nil {
		return err
	}

	var req models.CreateAPIKeyRequest
	if len(args) > 0 {
		req.Name = &args[0]
	}

	created, err := d.client.CreateAPIKey(ctx, p.ID, req)
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}

	fmt.Println(styleSuccess.Render("API key created for " + p.Name))
	fmt.Println()
	fmt.Println("  " + styleBrand.Render(created.Key))
	fmt.Println()
	fmt.Println(styleWarning.Render("Copy it now. This is the only time the full key is shown."))
	return nil
}

func runKeyRevoke(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	p, err := d.resolveProject(ctx, keyProjectFlag)
	if err != nil {
		return err
	}

	if err := d.client.RevokeAPIKey(ctx, p.ID, args[0]); err != nil {
		return fmt.Errorf("failed to revoke key: %w", err)
	}

	fmt.Println("Key revoked. Agents using it will stop reporting.")
	return nil
}
