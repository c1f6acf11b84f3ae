package main

import (
	"fmt"
	"unsafe"

	"github.com/spf13/cobra"

	"strpred/internal/boundary"
)

// dashHint is appended to the help of commands whose arguments may begin
// with '-'.
const dashHint = "Arguments that begin with '-' must follow --, e.g. strpred number -- -2.5e-3."

// arg exposes s to the boundary as a length-delimited buffer. The backing
// array always has room for one byte so the pointer is never nil, even for
// an empty argument.
func arg(s string) (unsafe.Pointer, int32) {
	b := make([]byte, len(s), len(s)+1)
	copy(b, s)
	return unsafe.Pointer(unsafe.SliceData(b)), int32(len(s))
}

func newNumberCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "number [--] <text>",
		Short: "Print 1 if text is a floating-point literal, else 0",
		Long:  "Print 1 if text is a floating-point literal, else 0.\n\n" + dashHint,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, n := arg(args[0])
			r := a.exporter.IsNumberN(p, n)
			return newPrinter(outputFormat(cmd), cmd.OutOrStdout()).result(boundary.OpIsNumberN, args, r)
		},
	}
}

func newContainsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contains [--] <haystack> <needle>",
		Short: "Print 1 if needle occurs in haystack, else 0",
		Long:  "Print 1 if needle occurs in haystack, else 0.\n\n" + dashHint,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hp, hn := arg(args[0])
			np, nn := arg(args[1])
			r := a.exporter.HasNameN(hp, hn, np, nn)
			return newPrinter(outputFormat(cmd), cmd.OutOrStdout()).result(boundary.OpHasNameN, args, r)
		},
	}
}

func newIdentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ident [--] <name>",
		Short: "Print 1 if name is a legal bare identifier, else 0",
		Long:  "Print 1 if name is a legal bare identifier, else 0.\n\n" + dashHint,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, n := arg(args[0])
			r := a.exporter.OkNameN(p, n)
			return newPrinter(outputFormat(cmd), cmd.OutOrStdout()).result(boundary.OpOkNameN, args, r)
		},
	}
}

func newPrefixCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefix [--fold] [--] <prefix> <text>",
		Short: "Print 1 if text begins with prefix, else 0",
		Long: `Print 1 if text begins with prefix, else 0.

With --fold the comparison ignores ASCII case. This is the same as calling
strbegin with a nonzero casesensitive flag, which selects the case-folded
comparison despite its name.

` + dashHint,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fold, _ := cmd.Flags().GetBool("fold")
			var flag int32
			if fold {
				flag = 1
			}
			sp, sn := arg(args[0])
			tp, tn := arg(args[1])
			r := a.exporter.BeginN(sp, sn, tp, tn, flag)
			return newPrinter(outputFormat(cmd), cmd.OutOrStdout()).result(boundary.OpBeginN, args, r)
		},
	}
	cmd.Flags().Bool("fold", false, "compare ignoring ASCII case")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count [--] <text> <char>",
		Short: "Print the number of occurrences of a single byte in text",
		Long:  "Print the number of occurrences of a single byte in text.\n\n" + dashHint,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args[1]) != 1 {
				return fmt.Errorf("char must be exactly one byte, got %q", args[1])
			}
			p, n := arg(args[0])
			r := a.exporter.SymbolCountN(p, n, args[1][0])
			return newPrinter(outputFormat(cmd), cmd.OutOrStdout()).result(boundary.OpSymbolCountN, args, r)
		},
	}
}
