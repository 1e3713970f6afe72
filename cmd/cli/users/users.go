package users

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/adboard/adboard/cmd/cli/config"
)

// ==========================
// Init Users
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	rootCmd.AddCommand(meCmd())
}

// ==========================
// ME
// ==========================
func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the account the stored token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return nil
			}

			req, _ := http.NewRequest("GET", config.APIURL()+"/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var user struct {
				ID       int    `json:"id"`
				Username string `json:"username"`
			}
			if err := json.Unmarshal(body, &user); err != nil {
				return err
			}

			fmt.Printf("%s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}
