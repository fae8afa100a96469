package main

import (
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rsalab-go/internal/app"
	"rsalab-go/internal/config"
	"rsalab-go/internal/rsa"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a LabApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "GenerateKeys", "EncryptMessage").
func newApp(operation string) (*app.LabApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewLabApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// abbrev shortens a big decimal string for display.
func abbrev(s string) string {
	if len(s) <= 40 {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:16], s[len(s)-16:], len(s))
}

// readPassphrase prompts for a passphrase without echoing it.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if len(pass) == 0 {
		return "", fmt.Errorf("passphrase must not be empty")
	}
	return string(pass), nil
}

var rootCmd = &cobra.Command{
	Use:   "rsalab",
	Short: "Textbook RSA playground",
	Long: `rsalab generates small RSA keypairs and encrypts text character by
character, exposing every intermediate value. It exists for teaching:
the ciphers it produces are NOT secure.`,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Create config with defaults
		cfg := config.NewConfig(defaults["base_dir"])

		// Initialize config file
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Printf("Default key size: %d bits\n", cfg.Keygen.Bits)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Read config
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// Display config
		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:         %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:          %s\n", cfg.LogDir)
		fmt.Printf("Default key size: %d bits\n", cfg.Keygen.Bits)
		fmt.Printf("Database:         %s\n", cfg.Database.Type)
		return nil
	},
}

// keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new RSA keypair",
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, _ := cmd.Flags().GetInt("bits")
		quiet, _ := cmd.Flags().GetBool("quiet")

		a, err := newApp("GenerateKeys")
		if err != nil {
			return err
		}
		defer a.Close()

		var progress rsa.ProgressFunc
		if !quiet {
			progress = func(step rsa.Step, value *big.Int) {
				fmt.Printf("  found %s: %s\n", step, abbrev(value.String()))
			}
		}

		start := time.Now()
		kp, err := a.GenerateKeys(cmd.Context(), bits, progress)
		if err != nil {
			a.FailOperation()
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Printf("Generated %d-bit keypair %s in %s\n", kp.Bits, kp.ID, time.Since(start).Truncate(time.Millisecond))
		fmt.Printf("Public key:  n=%s e=%s\n", abbrev(kp.N), kp.E)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Inspect, export and import keypairs",
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active keypair",
	RunE: func(cmd *cobra.Command, args []string) error {
		showPrivate, _ := cmd.Flags().GetBool("private")

		a, err := newApp("ShowKeys")
		if err != nil {
			return err
		}
		defer a.Close()

		kp, err := a.ActiveKeypair()
		if err != nil {
			return err
		}

		fmt.Printf("Keypair %s (%d bits, created %s)\n", kp.ID, kp.Bits, kp.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  n = %s\n", kp.N)
		fmt.Printf("  e = %s\n", kp.E)
		if showPrivate {
			fmt.Printf("  d = %s\n", kp.D)
			fmt.Printf("  p = %s\n", kp.P)
			fmt.Printf("  q = %s\n", kp.Q)
		}
		return nil
	},
}

var keysExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active keypair to key files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportKeys")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := readPassphrase("Passphrase for private key: ")
		if err != nil {
			return err
		}

		if err := a.ExportKeys(passphrase); err != nil {
			a.FailOperation()
			return fmt.Errorf("exporting keys: %w", err)
		}

		fmt.Println("Keypair exported. The private key file is passphrase encrypted.")
		return nil
	},
}

var keysImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a keypair from key files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ImportKeys")
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.KeyringConfigured() {
			return fmt.Errorf("no exported key files found; run 'rsalab keys export' first")
		}

		passphrase, err := readPassphrase("Passphrase for private key: ")
		if err != nil {
			return err
		}

		kp, err := a.ImportKeys(passphrase)
		if err != nil {
			a.FailOperation()
			return fmt.Errorf("importing keys: %w", err)
		}

		fmt.Printf("Imported %d-bit keypair as %s (now active)\n", kp.Bits, kp.ID)
		return nil
	},
}

// encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt MESSAGE",
	Short: "Encrypt a message with the active public key",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("EncryptMessage")
		if err != nil {
			return err
		}
		defer a.Close()

		text := strings.Join(args, " ")
		msg, err := a.EncryptMessage(text)
		if err != nil {
			a.FailOperation()
			return fmt.Errorf("encrypting: %w", err)
		}

		fmt.Println(msg.Ciphertext)
		return nil
	},
}

// decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [CIPHERTEXT]",
	Short: "Decrypt ciphertext with the active private key",
	Long: `Decrypt ciphertext given as space separated decimal blocks. With no
argument, the most recently encrypted message is decrypted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DecryptMessage")
		if err != nil {
			return err
		}
		defer a.Close()

		ciphertext := ""
		if len(args) > 0 {
			ciphertext = args[0]
		}

		msg, err := a.DecryptMessage(ciphertext)
		if err != nil {
			a.FailOperation()
			return fmt.Errorf("decrypting: %w", err)
		}

		fmt.Println(msg.Plaintext)
		return nil
	},
}

// verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Round-trip the last encrypted message",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("VerifyLast")
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.VerifyLast()
		if err != nil {
			return err
		}

		fmt.Printf("Original:  %s\n", v.Original)
		fmt.Printf("Decrypted: %s\n", v.Decrypted)
		if v.Match {
			fmt.Println("Round trip OK")
			return nil
		}
		return fmt.Errorf("round trip mismatch: the active key does not match the ciphertext")
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View lab operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No lab operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-15s  %s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysShowCmd)
	keysShowCmd.Flags().Bool("private", false, "Also print the private key components")
	keysCmd.AddCommand(keysExportCmd)
	keysCmd.AddCommand(keysImportCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().IntP("bits", "b", 0, "Modulus size in bits (default from config)")
	keygenCmd.Flags().BoolP("quiet", "q", false, "Suppress progress narration")
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
