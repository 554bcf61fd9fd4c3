package tcpflags

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zxhio/pktclass/cmd/pktclass/util"
	"github.com/zxhio/pktclass/pkg/enums"
	"github.com/zxhio/pktclass/pkg/utils"
)

func validity(flags enums.TCPFlags) string {
	if flags.IsInvalid() {
		return color.RedString("invalid")
	}
	return color.GreenString("valid")
}

func Display(w io.Writer, values []enums.TCPFlags) {
	data := [][]any{}
	for _, flags := range values {
		data = append(data, []any{
			fmt.Sprintf("0x%02x", uint8(flags)),
			fmt.Sprintf("0x%02x", uint8(flags&enums.TCPFlagsMask)),
			flags.String(),
			validity(flags),
		})
	}

	table := util.NewTable(w)
	table.Header("Value", "Masked", "Flags", "Validity")
	table.Bulk(data)
	table.Render()
}

// ValidCombinations lists every masked flag byte that passes validation.
func ValidCombinations() []enums.TCPFlags {
	var valid []enums.TCPFlags
	for v := enums.TCPFlags(0); v <= enums.TCPFlagsMask; v++ {
		if !v.IsInvalid() {
			valid = append(valid, v)
		}
	}
	return valid
}

var listValid bool

var flagsCmd = &cobra.Command{
	Use:     "flags <value...>",
	Short:   "Render and validate TCP flag bytes",
	Long:    "Render and validate TCP flag bytes.\n\nValues are numbers (0x12) or names joined by '|' (SYN|ACK).",
	Aliases: []string{"f"},
	Run: func(cmd *cobra.Command, args []string) {
		if listValid {
			Display(os.Stdout, ValidCombinations())
			return
		}
		if len(args) == 0 {
			cmd.Help()
			return
		}

		values := make([]enums.TCPFlags, 0, len(args))
		for _, arg := range args {
			flags, err := enums.ParseTCPFlags(arg)
			utils.CheckErrorAndExit(err, "Parse tcp flags failed")
			values = append(values, flags)
		}
		Display(os.Stdout, values)
	},
}

func init() {
	flagsCmd.Flags().BoolVarP(&listValid, "valid", "a", false, "List every valid flag combination")
	util.DisableSortFlags(flagsCmd)
}

func Export(parent *cobra.Command) {
	parent.AddCommand(flagsCmd)
}
