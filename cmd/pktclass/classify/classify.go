package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zxhio/pktclass/cmd/pktclass/util"
	"github.com/zxhio/pktclass/internal"
	"github.com/zxhio/pktclass/internal/source"
	"github.com/zxhio/pktclass/internal/stats"
	"github.com/zxhio/pktclass/pkg/enums"
	"github.com/zxhio/pktclass/pkg/fastpkt"
	"github.com/zxhio/pktclass/pkg/humanize"
	"github.com/zxhio/pktclass/pkg/profile"
	"github.com/zxhio/pktclass/pkg/utils"
)

type Options struct {
	Pcap      string
	Hex       []string
	LinkType  enums.LinkType
	Tap       enums.TapType
	Workers   int
	BatchSize int
	Rate      int
	Interval  time.Duration
	JSON      bool
	Pprof     string
}

var ErrNoSource = errors.New("one of --pcap or --hex is required")

// OpenSource opens the capture file or the hex frames named by opts.
func OpenSource(opts *Options) (source.Source, string, error) {
	switch {
	case opts.Pcap != "" && len(opts.Hex) > 0:
		return nil, "", errors.New("--pcap and --hex are mutually exclusive")
	case opts.Pcap != "":
		src, err := source.OpenPcap(opts.Pcap)
		return src, opts.Pcap, err
	case len(opts.Hex) > 0:
		src, err := source.NewHexSource(opts.LinkType, opts.Hex...)
		return src, "hex", err
	default:
		return nil, "", ErrNoSource
	}
}

type Summary struct {
	stats.Statistics
	Rate     stats.StatisticsRate `json:"rate"`
	Duration string               `json:"duration"`
}

// Run classifies every frame of the source and writes a summary to w. In
// verbose mode every frame is also printed as one line.
func Run(ctx context.Context, w io.Writer, opts *Options) error {
	src, name, err := OpenSource(opts)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	handler := func(frame *source.Frame, pkt *fastpkt.Packet, err error) {
		line := fastpkt.Format(pkt, fastpkt.WithFormatTime(frame.Timestamp), fastpkt.WithFormatLink())
		if err != nil {
			line = fmt.Sprintf("%s (%v)", line, err)
		}
		mu.Lock()
		fmt.Fprintln(w, line)
		mu.Unlock()
	}

	classifierOpts := []internal.ClassifierOpt{
		internal.WithWorkers(opts.Workers),
		internal.WithBatchSize(opts.BatchSize),
		internal.WithRateLimit(opts.Rate),
		internal.WithTapType(opts.Tap),
	}
	if utils.Verbose() {
		classifierOpts = append(classifierOpts, internal.WithPacketHandler(handler))
	}

	c := internal.NewClassifier(name, src, classifierOpts...)
	defer c.Close()

	start := stats.Statistics{Timestamp: time.Now()}
	if opts.Interval > 0 && !opts.JSON {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go dumpStats(ctx, w, &mu, c.Counter(), opts.Interval, start)
	}

	if err := c.Run(ctx); err != nil {
		return err
	}

	final := c.Counter().Snapshot()
	s := Summary{
		Statistics: final,
		Rate:       final.Rate(start),
		Duration:   final.Timestamp.Sub(start.Timestamp).Round(time.Microsecond).String(),
	}

	mu.Lock()
	defer mu.Unlock()
	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	DisplaySummary(w, &s)
	return nil
}

func dumpStats(ctx context.Context, w io.Writer, mu *sync.Mutex, counter *stats.Counter, dur time.Duration, prev stats.Statistics) {
	timer := time.NewTicker(dur)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			curr := counter.Snapshot()
			mu.Lock()
			displayRate(w, curr, curr.Rate(prev))
			mu.Unlock()
			prev = curr
		}
	}
}

func displayRate(w io.Writer, s stats.Statistics, rate stats.StatisticsRate) {
	table := util.NewTable(w)
	table.Header("Packets", "PPS", "Bytes", "BPS", "Errors", "Err/s")
	table.Append([]string{
		humanize.Count(s.Packets),
		humanize.PacketsRate(rate.PPS),
		humanize.Bytes(s.Bytes),
		humanize.BitsRate(rate.BPS),
		humanize.Count(s.Errors()),
		fmt.Sprintf("%.0f", rate.ErrPS),
	})
	table.Render()
	fmt.Fprintln(w)
}

func percent(n, total uint64) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(n)*100/float64(total))
}

func sortedKeys[K ~uint8](m map[K]uint64) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func DisplaySummary(w io.Writer, s *Summary) {
	table := util.NewTable(w)
	table.Header("Header", "Packets", "Ratio")
	for _, t := range sortedKeys(s.HeaderTypes) {
		table.Append([]string{t.String(), fmt.Sprint(s.HeaderTypes[t]), percent(s.HeaderTypes[t], s.Packets)})
	}
	table.Render()
	fmt.Fprintln(w)

	if len(s.L7Protocols) > 0 {
		table = util.NewTable(w)
		table.Header("L7", "Packets", "Ratio")
		for _, p := range sortedKeys(s.L7Protocols) {
			table.Append([]string{p.String(), fmt.Sprint(s.L7Protocols[p]), percent(s.L7Protocols[p], s.Packets)})
		}
		table.Render()
		fmt.Fprintln(w)
	}

	table = util.NewTable(w)
	table.Header("Error", "Packets")
	table.Bulk([][]any{
		{"truncated", s.Truncated},
		{"invalid_ip_header", s.InvalidIPHeader},
		{"invalid_tcp_header", s.InvalidTCPHeader},
		{"invalid_tcp_flags", s.InvalidTCPFlags},
		{"unsupported_link", s.UnsupportedLink},
		{"fragments", s.Fragments},
		{"unknown_ethertype", s.UnknownEthernet},
	})
	table.Footer([]string{"total", fmt.Sprint(s.Errors())})
	table.Render()
	fmt.Fprintln(w)

	table = util.NewTable(w)
	table.Header("Packets", "Bytes", "PPS", "BPS", "Duration")
	table.Append([]string{
		humanize.Count(s.Packets),
		humanize.Bytes(s.Bytes),
		humanize.PacketsRate(s.Rate.PPS),
		humanize.BitsRate(s.Rate.BPS),
		s.Duration,
	})
	table.Render()
}

var opts = Options{
	LinkType:  enums.LinkTypeEthernet,
	Workers:   internal.DefaultWorkers,
	BatchSize: internal.DefaultBatchSize,
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify frames from a capture file or hex dump",
	Example: `  pktclass classify --pcap trace.pcapng --workers 4
  pktclass classify --hex 'ffffffffffff...' --linktype Ethernet -v`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if opts.Pprof != "" {
			lis, err := net.Listen("tcp", opts.Pprof)
			utils.CheckErrorAndExit(err, "Listen pprof failed")
			go func() {
				err := profile.Serve(lis)
				logrus.WithField("addr", lis.Addr()).WithError(err).Warn("Pprof server exited")
			}()
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err := Run(ctx, os.Stdout, &opts)
		utils.CheckErrorAndExit(err, "Classify failed")
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&opts.Pcap, "pcap", "r", "", "Read frames from a pcap or pcapng file")
	classifyCmd.Flags().StringSliceVar(&opts.Hex, "hex", nil, "Classify hex encoded frames")
	classifyCmd.Flags().Var(&opts.LinkType, "linktype", "Link type of --hex frames")
	classifyCmd.Flags().Var(&opts.Tap, "tap", "Capture point recorded in logs (any, tor, isp<N>)")
	classifyCmd.Flags().IntVarP(&opts.Workers, "workers", "w", opts.Workers, "Number of classification workers")
	classifyCmd.Flags().IntVar(&opts.BatchSize, "batch", opts.BatchSize, "Frames handed to a worker at once")
	classifyCmd.Flags().IntVar(&opts.Rate, "rate", 0, "Replay rate in packets per second, 0 for unlimited")
	classifyCmd.Flags().DurationVarP(&opts.Interval, "interval", "i", 0, "Print rate statistics every interval")
	classifyCmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the summary as json")
	classifyCmd.Flags().StringVar(&opts.Pprof, "pprof", "", "Serve runtime profiles on this address, e.g. 127.0.0.1:6060")
	util.DisableSortFlags(classifyCmd)
}

func Export(parent *cobra.Command) {
	parent.AddCommand(classifyCmd)
}
