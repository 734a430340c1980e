package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/wizauth/internal/http/server"
)

// newTokenCmd agrupa utilidades offline sobre tokens: no tocan el provider.
func newTokenCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emitir, verificar e inspeccionar tokens",
	}
	cmd.AddCommand(newTokenIssueCmd(load), newTokenVerifyCmd(load), newTokenInspectCmd(load))
	return cmd
}

func newTokenIssueCmd(load loader) *cobra.Command {
	var (
		sub   string
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Firma un token local para un subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			issuer, _, err := server.BuildTokens(cfg)
			if err != nil {
				return err
			}
			var extra map[string]any
			if email != "" {
				extra = map[string]any{"email": email}
			}
			tok, exp, err := issuer.IssueWithClaims(sub, ttl, extra)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"access_token": tok,
				"token_type":   "bearer",
				"expires_at":   exp.UTC().Format(time.RFC3339),
			})
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "subject id (requerido)")
	cmd.Flags().StringVar(&email, "email", "", "claim email opcional")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "vida del token (default ACCESS_TOKEN_EXPIRE_MINUTES)")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func newTokenVerifyCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [token]",
		Short: "Verifica un token con las estrategias configuradas (lee stdin si no hay argumento)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			_, verifier, err := server.BuildTokens(cfg)
			if err != nil {
				return err
			}
			raw, err := tokenArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			p, err := verifier.Verify(raw)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"sub":        p.SubjectID,
				"strategy":   p.Source,
				"email":      p.Email,
				"role":       p.Role,
				"expires_at": p.ExpiresAt.UTC().Format(time.RFC3339),
			})
		},
	}
}

func newTokenInspectCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [token]",
		Short: "Decodifica un token sin confiar en él",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			_, verifier, err := server.BuildTokens(cfg)
			if err != nil {
				return err
			}
			raw, err := tokenArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			out, err := verifier.Inspect(raw)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func tokenArg(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("leyendo token de stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
