package ads

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adboard/adboard/cmd/cli/config"
	"github.com/adboard/adboard/cmd/cli/output"
)

// ==========================
// Init Ads
// ==========================
func InitAds(rootCmd *cobra.Command) {

	adsCmd := &cobra.Command{
		Use:   "ads",
		Short: "Look up ads",
	}

	adsCmd.AddCommand(getAdCmd())

	rootCmd.AddCommand(adsCmd)
}

// ==========================
// GET
// ==========================
func getAdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <ad_id>",
		Short: "Fetch an ad by its external id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("ad id must be an integer: %q", args[0])
			}

			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return nil
			}

			req, _ := http.NewRequest("GET", config.APIURL()+"/ads/"+args[0], nil)
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

			var ad struct {
				ID       int    `json:"id"`
				AdID     int    `json:"ad_id"`
				Title    string `json:"title"`
				Author   string `json:"author"`
				Views    int    `json:"views"`
				Position int    `json:"position"`
			}
			if err := json.Unmarshal(body, &ad); err != nil {
				return err
			}

			output.RenderTable(
				[]string{"Ad ID", "Title", "Author", "Views", "Position"},
				[][]interface{}{{ad.AdID, ad.Title, ad.Author, ad.Views, ad.Position}},
			)
			return nil
		},
	}
}
