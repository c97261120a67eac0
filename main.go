package main

import (
	"fmt"
	"os"

	"sitapp/spend-report/cmd/categories"
	"sitapp/spend-report/cmd/categorize"
	"sitapp/spend-report/cmd/report"
	"sitapp/spend-report/cmd/root"
	"sitapp/spend-report/cmd/rules"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
