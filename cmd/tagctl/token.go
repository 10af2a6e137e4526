package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Auth token utilities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Generate a random bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := make([]byte, 24)
			if _, err := rand.Read(raw); err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Println(hex.EncodeToString(raw))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "hash [token]",
		Short: "Print the bcrypt hash of a token for auth_token_hash config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash token: %w", err)
			}
			fmt.Println(string(hash))
			return nil
		},
	})

	return cmd
}
