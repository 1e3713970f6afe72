package main

import (
	"fmt"
	"os"

	"github.com/adboard/adboard/cmd/cli/ads"
	"github.com/adboard/adboard/cmd/cli/auth"
	"github.com/adboard/adboard/cmd/cli/root"
	"github.com/adboard/adboard/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	ads.InitAds(rootCmd)
	users.InitUsers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
