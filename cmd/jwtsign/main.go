// Command jwtsign mints a JWT for one of the supported third-party APIs and
// prints it to stdout.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bionicotaku/lingo-utils-jwtsign"
)

var buildVersion = "dev"

type options struct {
	keyFile string
	keyID   string
	issuer  string
	apiKey  string
	secret  string
	envFile string
	logFile string
	decode  bool

	logger   *zap.Logger
	closeLog func() error
}

func main() {
	os.Exit(execute(newRootCmd(), os.Stderr))
}

// execute runs cmd and returns the process exit code. Signing failures are
// already logged by the issuer and are not printed again.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var signErr *jwtsign.Error
	if !errors.As(err, &signErr) {
		fmt.Fprintln(stderr, "jwtsign:", err)
	}
	return 1
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "jwtsign",
		Short:         "Mint signed JWTs for App Store Connect, AM, APNs and the webinar API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(opts.envFile); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: load %s: %v\n", opts.envFile, err)
			}
			opts.applyEnv()
			opts.logger, opts.closeLog = newLogger(cmd.ErrOrStderr(), opts.logFile)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env", defaultEnvPath(), "Path to .env file (env JWTSIGN_ENV_FILE)")
	flags.StringVar(&opts.logFile, "log-file", "", "Also write logs to this rotating file")
	flags.BoolVar(&opts.decode, "decode", false, "Print decoded header and payload after the token")

	for _, aud := range []jwtsign.Audience{jwtsign.AudienceStoreConnect, jwtsign.AudienceService, jwtsign.AudiencePush} {
		cmd.AddCommand(newES256Cmd(opts, aud))
	}
	cmd.AddCommand(newWebinarCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

var es256Short = map[jwtsign.Audience]string{
	jwtsign.AudienceStoreConnect: "App Store Connect API token (20 minutes)",
	jwtsign.AudienceService:      "AM service token (about six months)",
	jwtsign.AudiencePush:         "APNs provider token (no exp claim)",
}

func newES256Cmd(opts *options, aud jwtsign.Audience) *cobra.Command {
	cmd := &cobra.Command{
		Use:   aud.String(),
		Short: es256Short[aud],
		RunE: opts.withLogger(func(cmd *cobra.Command, args []string) error {
			if opts.keyFile == "" || opts.keyID == "" || opts.issuer == "" {
				return errors.New("key-file, key-id and issuer are required")
			}
			key, err := os.ReadFile(opts.keyFile)
			if err != nil {
				return fmt.Errorf("read key: %w", err)
			}
			return opts.issue(cmd.OutOrStdout(), jwtsign.Request{
				Audience: aud,
				Key:      key,
				KeyID:    opts.keyID,
				Issuer:   opts.issuer,
			})
		}),
	}
	cmd.Flags().StringVar(&opts.keyFile, "key-file", "", "EC P-256 private key, PEM or DER (env JWTSIGN_KEY_FILE)")
	cmd.Flags().StringVar(&opts.keyID, "key-id", "", "Key identifier for the kid header (env JWTSIGN_KEY_ID)")
	cmd.Flags().StringVar(&opts.issuer, "issuer", "", "Issuer claim (env JWTSIGN_ISSUER)")
	return cmd
}

func newWebinarCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   jwtsign.AudienceWebinar.String(),
		Short: "Webinar platform API token (HS256)",
		RunE: opts.withLogger(func(cmd *cobra.Command, args []string) error {
			if opts.apiKey == "" || opts.secret == "" {
				return errors.New("api-key and secret are required")
			}
			return opts.issue(cmd.OutOrStdout(), jwtsign.Request{
				Audience: jwtsign.AudienceWebinar,
				Issuer:   opts.apiKey,
				Secret:   opts.secret,
			})
		}),
	}
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "API key, used as issuer (env JWTSIGN_API_KEY)")
	cmd.Flags().StringVar(&opts.secret, "secret", "", "API secret (env JWTSIGN_SECRET)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version=%s\n", buildVersion)
		},
	}
}

// withLogger flushes and closes the log sinks once fn returns, including on
// error, where cobra skips the post-run hooks.
func (o *options) withLogger(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer o.closeLogger()
		return fn(cmd, args)
	}
}

func (o *options) closeLogger() {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
	if o.closeLog != nil {
		_ = o.closeLog()
		o.closeLog = nil
	}
}

func (o *options) issue(w io.Writer, req jwtsign.Request) error {
	issuer := jwtsign.NewIssuer(jwtsign.Config{Logger: o.logger})
	token, err := issuer.Issue(req)
	if err != nil {
		return err
	}
	o.logger.Info("token issued", zap.Stringer("audience", req.Audience))

	fmt.Fprintln(w, token)
	if o.decode {
		return printDecoded(w, token)
	}
	return nil
}

func printDecoded(w io.Writer, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("unexpected token format: %d segments", len(parts))
	}
	for i, name := range []string{"header", "payload"} {
		raw, err := base64.RawURLEncoding.DecodeString(parts[i])
		if err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return fmt.Errorf("format %s: %w", name, err)
		}
		fmt.Fprintf(w, "%s: %s\n", name, out.String())
	}
	return nil
}

func defaultEnvPath() string {
	if path := os.Getenv("JWTSIGN_ENV_FILE"); path != "" {
		return path
	}
	return ".env"
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// applyEnv fills flags that were left empty from the environment.
func (o *options) applyEnv() {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&o.keyFile, "JWTSIGN_KEY_FILE")
	fill(&o.keyID, "JWTSIGN_KEY_ID")
	fill(&o.issuer, "JWTSIGN_ISSUER")
	fill(&o.apiKey, "JWTSIGN_API_KEY")
	fill(&o.secret, "JWTSIGN_SECRET")
}
