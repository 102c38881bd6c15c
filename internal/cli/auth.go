package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/agentscope-io/agentscope/internal/models"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and store the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create an account and sign in",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	email, password, err := promptCredentials(args)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := d.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := d.sessions.SetAuth(&resp.User, resp.AccessToken); err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Logged in as " + resp.User.DisplayName()))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	email, password, err := promptCredentials(args)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Name (optional): ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	req := models.RegisterRequest{Email: email, Password: password}
	if name != "" {
		req.Name = &name
	}

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := d.client.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := d.sessions.SetAuth(&resp.User, resp.AccessToken); err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Account created. Logged in as " + resp.User.DisplayName()))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	if err := d.sessions.Logout(); err != nil {
		return err
	}
	// Project selection is a per-session preference; drop it with the
	// session so the next account doesn't inherit it.
	if err := d.projects.ClearStored(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	user := d.sessions.User()
	if user == nil {
		fmt.Println(styleHint.Render("Not logged in."))
		return nil
	}

	fmt.Printf("%s %s\n", styleLabel.Render("Account:"), styleValue.Render(user.DisplayName()))
	fmt.Printf("%s %s\n", styleLabel.Render("Email:"), styleValue.Render(user.Email))
	fmt.Printf("%s %s\n", styleLabel.Render("Server:"), styleValue.Render(d.client.BaseURL()))
	return nil
}

func promptCredentials(args []string) (email, password string, err error) {
	reader := bufio.NewReader(os.Stdin)

	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Print("Email: ")
		line, _ := reader.ReadString('\n')
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	password = string(raw)
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}

	return email, password, nil
}
