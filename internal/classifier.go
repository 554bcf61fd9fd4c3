package internal

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zxhio/pktclass/internal/source"
	"github.com/zxhio/pktclass/internal/stats"
	"github.com/zxhio/pktclass/pkg/enums"
	"github.com/zxhio/pktclass/pkg/fastpkt"
	"github.com/zxhio/pktclass/pkg/utils"
	"golang.org/x/time/rate"
)

const (
	DefaultBatchSize = 64
	DefaultWorkers   = 1
)

// PacketHandler is called for every frame after classification. With more
// than one worker it is called concurrently and out of capture order.
type PacketHandler func(frame *source.Frame, pkt *fastpkt.Packet, err error)

type classifierOpts struct {
	workers   int
	batchSize int
	rateLimit int
	tap       enums.TapType
	handler   PacketHandler
}

type ClassifierOpt func(*classifierOpts)

func WithWorkers(n int) ClassifierOpt {
	return func(o *classifierOpts) { o.workers = n }
}

func WithBatchSize(n int) ClassifierOpt {
	return func(o *classifierOpts) { o.batchSize = n }
}

// WithRateLimit paces reading from the source to pps frames per second.
// Zero or less reads as fast as possible.
func WithRateLimit(pps int) ClassifierOpt {
	return func(o *classifierOpts) { o.rateLimit = pps }
}

// WithTapType tags the classification logs with the capture point.
func WithTapType(tap enums.TapType) ClassifierOpt {
	return func(o *classifierOpts) { o.tap = tap }
}

func WithPacketHandler(h PacketHandler) ClassifierOpt {
	return func(o *classifierOpts) { o.handler = h }
}

// Classifier reads frames from a source and classifies them on a group of
// workers, each reusing its own batch of packets.
type Classifier struct {
	name string
	*classifierOpts
	src     source.Source
	counter *stats.Counter
	closers utils.NamedClosers
	log     *logrus.Entry
}

func NewClassifier(name string, src source.Source, opts ...ClassifierOpt) *Classifier {
	o := classifierOpts{workers: DefaultWorkers, batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(&o)
	}
	o.workers = max(o.workers, 1)
	o.batchSize = max(o.batchSize, 1)

	l := logrus.WithFields(logrus.Fields{"source": name, "tap": o.tap})
	l.WithFields(logrus.Fields{
		"link_type": src.LinkType(), "workers": o.workers,
		"batch_size": o.batchSize, "rate_limit": o.rateLimit,
	}).Info("New classifier")

	return &Classifier{
		name:           name,
		classifierOpts: &o,
		src:            src,
		counter:        stats.NewCounter(),
		closers:        utils.NamedClosers{{Name: "source.Source", Close: src.Close}},
		log:            l,
	}
}

func (c *Classifier) Counter() *stats.Counter { return c.counter }

func (c *Classifier) Close() error {
	return c.closers.Close(c.log)
}

type frameBatch struct {
	frames []source.Frame
}

// Run classifies frames until the source is exhausted or ctx is done. It
// returns the first read error other than io.EOF.
func (c *Classifier) Run(ctx context.Context) error {
	batches := make(chan *frameBatch, c.workers)
	free := make(chan *frameBatch, c.workers*2)
	for i := 0; i < c.workers*2; i++ {
		free <- &frameBatch{frames: make([]source.Frame, 0, c.batchSize)}
	}

	var wg sync.WaitGroup
	wg.Add(c.workers)
	for i := 0; i < c.workers; i++ {
		go func(id int) {
			defer wg.Done()
			c.runWorker(id, batches, free)
		}(i)
	}

	err := c.read(ctx, batches, free)
	close(batches)
	wg.Wait()

	s := c.counter.Snapshot()
	c.log.WithFields(logrus.Fields{"packets": s.Packets, "bytes": s.Bytes, "errors": s.Errors()}).Info("Classifier done")
	return err
}

func (c *Classifier) read(ctx context.Context, batches chan<- *frameBatch, free chan *frameBatch) error {
	var limiter *rate.Limiter
	if c.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.rateLimit), 1)
	}

	for {
		var b *frameBatch
		select {
		case <-ctx.Done():
			return nil
		case b = <-free:
		}

		b.frames = b.frames[:0]
		var readErr error
		for len(b.frames) < c.batchSize {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					// ctx done
					readErr = io.EOF
					break
				}
			}
			frame, err := c.src.Next()
			if err != nil {
				readErr = err
				break
			}
			b.frames = append(b.frames, frame)
			// A paced replay hands over every frame as it arrives.
			if limiter != nil {
				break
			}
		}

		if len(b.frames) > 0 {
			batches <- b
		} else {
			free <- b
		}

		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return errors.Wrapf(readErr, "read %s", c.name)
		}
	}
}

func (c *Classifier) runWorker(id int, batches <-chan *frameBatch, free chan<- *frameBatch) {
	l := c.log.WithField("worker", id)
	l.Debug("Start classifier worker")

	pkts := make([]fastpkt.Packet, c.batchSize)
	for b := range batches {
		for i := range b.frames {
			pkt := &pkts[i]
			pkt.Clear()
			err := pkt.DecodeFromData(b.frames[i].Data, b.frames[i].LinkType)
			c.counter.Observe(pkt, err)
			c.handlePacket(l, &b.frames[i], pkt, err)
		}
		free <- b
	}
}

func (c *Classifier) handlePacket(l *logrus.Entry, frame *source.Frame, pkt *fastpkt.Packet, err error) {
	if logrus.GetLevel() >= logrus.TraceLevel {
		e := l.WithFields(logrus.Fields{
			"hdr_type":  pkt.HeaderType,
			"eth_type":  pkt.EthType,
			"ip_proto":  pkt.IPProtocol,
			"l7_proto":  pkt.L7Proto,
			"src_ip":    pkt.SrcIP,
			"dst_ip":    pkt.DstIP,
			"src_port":  pkt.SrcPort,
			"dst_port":  pkt.DstPort,
			"tcp_flags": pkt.TCPFlags,
		})
		if err != nil {
			e = e.WithError(err)
		}
		e.Trace("Classify packet")
	}

	if c.handler != nil {
		c.handler(frame, pkt, err)
	}
}
