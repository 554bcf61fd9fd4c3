package sizes

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zxhio/pktclass/cmd/pktclass/util"
	"github.com/zxhio/pktclass/pkg/enums"
)

func mark(b bool) string {
	if b {
		return "x"
	}
	return "-"
}

func Display(w io.Writer) {
	data := [][]any{}
	for _, t := range enums.HeaderTypes() {
		data = append(data, []any{
			t.String(),
			fmt.Sprintf("0x%02x", uint8(t)),
			t.MinPacketSize(),
			t.MinHeaderSize(),
			mark(t.IsL2()),
			mark(t.IsL3()),
			mark(t.IsL4()),
			mark(t.IsIPv6()),
		})
	}

	table := util.NewTable(w)
	table.Header("Header", "Code", "Min Packet", "Min Header", "L2", "L3", "L4", "IPv6")
	table.Bulk(data)
	table.Render()
}

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "Show minimum sizes of classified header stacks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		Display(os.Stdout)
	},
}

func Export(parent *cobra.Command) {
	parent.AddCommand(sizesCmd)
}
