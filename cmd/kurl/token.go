package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/kurl/pkg/auth"
	"github.com/blackcoderx/kurl/pkg/command"
	"github.com/blackcoderx/kurl/pkg/storage"
)

var tokenReq = auth.TokenRequest{}
var tokenEnvName string

func init() {
	tokenCmd.Flags().StringVar(&tokenReq.Flow, "flow", "client_credentials", "OAuth2 flow (client_credentials or password)")
	tokenCmd.Flags().StringVar(&tokenReq.TokenURL, "token-url", "", "Token endpoint URL")
	tokenCmd.Flags().StringVar(&tokenReq.ClientID, "client-id", "", "OAuth2 client id")
	tokenCmd.Flags().StringVar(&tokenReq.ClientSecret, "client-secret", "", "OAuth2 client secret")
	tokenCmd.Flags().StringSliceVar(&tokenReq.Scopes, "scope", nil, "Requested scope (repeatable)")
	tokenCmd.Flags().StringVar(&tokenReq.Username, "username", "", "Username (password flow)")
	tokenCmd.Flags().StringVar(&tokenReq.Password, "password", "", "Password (password flow)")
	tokenCmd.Flags().StringVar(&tokenReq.SaveAs, "save-as", "token", "Variable name for the access token")
	tokenCmd.Flags().StringVarP(&tokenEnvName, "env", "e", "Default", "Environment to store the token in")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetch an OAuth2 token and store it as an environment variable",
	Long: `Fetches an access token from an OAuth2 token endpoint and saves it into
the chosen environment, both raw and as a ready-made Bearer header. Built
commands can then reference {{token}} or {{token_header}}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := storage.NewStore("")
		if err := store.Init(); err != nil {
			return err
		}

		token, err := auth.FetchToken(context.Background(), tokenReq)
		if err != nil {
			return err
		}

		envs, err := store.LoadEnvironments()
		if err != nil {
			return err
		}
		idx := -1
		for i := range envs {
			if envs[i].Name == tokenEnvName {
				idx = i
				break
			}
		}
		if idx == -1 {
			envs = append(envs, *command.NewEnvironment(tokenEnvName))
			idx = len(envs) - 1
		}
		auth.StoreToken(&envs[idx], tokenReq.SaveAs, token)

		if err := store.SaveEnvironments(envs); err != nil {
			return err
		}

		fmt.Printf("Token saved as {{%s}} in environment %q\n", tokenReq.SaveAs, tokenEnvName)
		fmt.Printf("Bearer header saved as {{%s_header}}\n", tokenReq.SaveAs)
		if !token.Expiry.IsZero() {
			fmt.Printf("Expires: %s\n", token.Expiry.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}
