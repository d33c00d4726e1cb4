package main

import (
	"fmt"
	"os"

	"fjacquet/quickspend/cmd/add"
	"fjacquet/quickspend/cmd/analyze"
	"fjacquet/quickspend/cmd/categories"
	"fjacquet/quickspend/cmd/commontx"
	"fjacquet/quickspend/cmd/export"
	"fjacquet/quickspend/cmd/importcsv"
	"fjacquet/quickspend/cmd/list"
	"fjacquet/quickspend/cmd/purge"
	"fjacquet/quickspend/cmd/remove"
	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/cmd/shell"
	"fjacquet/quickspend/cmd/summary"
)

func init() {
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(shell.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
	root.Cmd.AddCommand(purge.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(importcsv.Cmd)
	root.Cmd.AddCommand(commontx.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
}

func main() {
	err := root.Cmd.Execute()
	if cerr := root.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
