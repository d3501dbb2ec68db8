package id_gen

import (
	"os"
	"strconv"
	"strings"
	"time"

	"accountd/be/biz/util/ip"

	"github.com/bytedance/gopkg/lang/fastrand"
)

var idgen = NewIDGenerator(10)

// NewID returns a log id: base36 millis, host ipv4 hex, pid, base36 random.
func NewID() string {
	return idgen.NewID()
}

// IDGenerator prepares ids ahead of time on a background goroutine.
type IDGenerator struct {
	pool <-chan string
	stop chan any
}

func NewIDGenerator(maxSize int) *IDGenerator {
	stop := make(chan any)
	host := ip.IPv4Hex() + strconv.Itoa(os.Getpid())
	return &IDGenerator{
		pool: newPool(maxSize, host, stop),
		stop: stop,
	}
}

func (g *IDGenerator) Stop() {
	select {
	case <-g.stop:
	default:
		close(g.stop)
	}
}

func (g *IDGenerator) NewID() string {
	return <-g.pool
}

func newPool(size int, host string, stop chan any) <-chan string {
	pool := make(chan string, size)
	go func() {
		for {
			select {
			case <-stop:
				return
			case pool <- compose(time.Now(), host, fastrand.Uint64()):
			}
		}
	}()
	return pool
}

func compose(now time.Time, host string, r uint64) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	sb.WriteString(host)
	sb.WriteString(strconv.FormatUint(r, 36))
	return sb.String()
}
