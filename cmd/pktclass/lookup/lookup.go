package lookup

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/zxhio/pktclass/cmd/pktclass/util"
	"github.com/zxhio/pktclass/pkg/enums"
	"github.com/zxhio/pktclass/pkg/utils"
)

type entry struct {
	Code string
	Name string
}

// family is one protocol family of the registry as seen from the command
// line. decode follows the family's own conversion rules, so strict
// families fail on unmapped codes and the others fall back to Unknown.
type family struct {
	name    string
	bits    int
	decode  func(code uint64) (string, error)
	entries func() []entry
}

func codeEntries[T interface {
	~uint8 | ~uint16 | ~uint32
	fmt.Stringer
}](values []T, format string) []entry {
	entries := make([]entry, 0, len(values))
	for _, v := range values {
		entries = append(entries, entry{Code: fmt.Sprintf(format, uint64(v)), Name: v.String()})
	}
	return entries
}

var families = []family{
	{
		name: "ethertype",
		bits: 16,
		decode: func(code uint64) (string, error) {
			return enums.EthernetTypeFrom(uint16(code)).String(), nil
		},
		entries: func() []entry { return codeEntries(enums.EthernetTypes(), "0x%04x") },
	},
	{
		name: "ipproto",
		bits: 8,
		decode: func(code uint64) (string, error) {
			p := enums.IPProtocolFrom(uint8(code))
			return fmt.Sprintf("%s (l4 %s, l7 %s)", p, p.L4Protocol(), p.L7Bitmap()), nil
		},
		entries: func() []entry { return codeEntries(enums.IPProtocols(), "%d") },
	},
	{
		name: "l7",
		bits: 8,
		decode: func(code uint64) (string, error) {
			return enums.L7ProtocolFrom(uint8(code)).String(), nil
		},
		entries: func() []entry { return codeEntries(enums.L7Protocols(), "%d") },
	},
	{
		name: "linktype",
		bits: 8,
		decode: func(code uint64) (string, error) {
			t, err := enums.LinkTypeFrom(uint8(code))
			if err != nil {
				return "", err
			}
			return t.String(), nil
		},
		entries: func() []entry { return codeEntries(enums.LinkTypes(), "%d") },
	},
	{
		name: "iftype",
		bits: 32,
		decode: func(code uint64) (string, error) {
			t, err := enums.IfTypeFrom(uint32(code))
			if err != nil {
				return "", err
			}
			if lt, ok := t.LinkType(); ok {
				return fmt.Sprintf("%s (link %s)", t, lt), nil
			}
			return t.String(), nil
		},
		entries: func() []entry { return codeEntries(enums.IfTypes(), "%d") },
	},
	{
		name: "taptype",
		bits: 16,
		decode: func(code uint64) (string, error) {
			t, err := enums.TapTypeFrom(uint16(code))
			if err != nil {
				return "", err
			}
			return t.String(), nil
		},
		entries: func() []entry {
			return []entry{
				{Code: "0", Name: enums.TapAny.String()},
				{Code: "1-2", Name: "isp1-isp2"},
				{Code: "3", Name: enums.TapTor.String()},
				{Code: "4-255", Name: "isp4-isp255"},
			}
		},
	},
}

func familyNames() []string {
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.name)
	}
	return names
}

func findFamily(name string) (*family, error) {
	idx := slices.IndexFunc(families, func(f family) bool { return f.name == strings.ToLower(name) })
	if idx == -1 {
		return nil, errors.Errorf("unknown family %q, want one of %s", name, strings.Join(familyNames(), ", "))
	}
	return &families[idx], nil
}

// resolve accepts a number in any Go base or a name from the family table.
func (f *family) resolve(arg string) (uint64, error) {
	code, err := strconv.ParseUint(arg, 0, f.bits)
	if err == nil {
		return code, nil
	}
	for _, e := range f.entries() {
		if strings.EqualFold(e.Name, arg) {
			return strconv.ParseUint(e.Code, 0, f.bits)
		}
	}
	if f.name == "taptype" {
		t, err := enums.ParseTapType(arg)
		if err == nil {
			return uint64(t.Code()), nil
		}
	}
	return 0, errors.Errorf("invalid %s code %q", f.name, arg)
}

func Lookup(w io.Writer, familyName string, args []string) error {
	f, err := findFamily(familyName)
	if err != nil {
		return err
	}

	for _, arg := range args {
		code, err := f.resolve(arg)
		if err != nil {
			return err
		}
		name, err := f.decode(code)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %d (0x%x): %s\n", f.name, code, code, name)
	}
	return nil
}

func List(w io.Writer, familyName string) error {
	f, err := findFamily(familyName)
	if err != nil {
		return err
	}

	data := [][]any{}
	for _, e := range f.entries() {
		data = append(data, []any{e.Code, e.Name})
	}

	table := util.NewTable(w)
	table.Header("Code", "Name")
	table.Bulk(data)
	table.Render()
	return nil
}

var listAll bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <family> [code|name...]",
	Short: "Look up protocol codes in the registry",
	Long: "Look up protocol codes in the registry.\n\nFamilies: " + strings.Join(familyNames(), ", ") +
		"\nUnmapped codes are an error for linktype, iftype and taptype.",
	Aliases: []string{"l"},
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if listAll || len(args) == 1 {
			utils.CheckErrorAndExit(List(os.Stdout, args[0]), "List family failed")
			return
		}
		utils.CheckErrorAndExit(Lookup(os.Stdout, args[0], args[1:]), "Lookup failed")
	},
}

func init() {
	lookupCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Print the whole family table")
	util.DisableSortFlags(lookupCmd)
}

func Export(parent *cobra.Command) {
	parent.AddCommand(lookupCmd)
}
