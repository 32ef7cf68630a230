package texture

import (
	"context"
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/neowatch/internal/logger"
)

// Request asks for the file at Path to be decoded into Handle.
type Request struct {
	Path   string
	Handle *Handle
}

// Options control background decoding.
type Options struct {
	// MaxSize caps either side of a decoded image.
	MaxSize int
	// Workers limits concurrent decodes.
	Workers int
}

// Batch tracks a set of background decodes.
type Batch struct {
	done chan struct{}
	err  error
}

// Load decodes every request in the background. A file that fails to read or
// decode only fails its own handle; the batch error is set only when ctx is
// canceled.
func Load(ctx context.Context, reqs []Request, opts Options) *Batch {
	b := &Batch{done: make(chan struct{})}
	log := logger.Named("texture")

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	go func() {
		defer close(b.done)
		for _, r := range reqs {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					r.Handle.resolve(nil, err)
					return err
				}
				img, err := decodeFile(r.Path, opts.MaxSize)
				if err != nil {
					log.Warn("texture unavailable, using vertex color",
						zap.String("name", r.Handle.Name), zap.Error(err))
				} else {
					log.Debug("texture decoded",
						zap.String("name", r.Handle.Name),
						zap.Int("width", img.Bounds().Dx()),
						zap.Int("height", img.Bounds().Dy()))
				}
				r.Handle.resolve(img, err)
				return nil
			})
		}
		b.err = g.Wait()
	}()
	return b
}

func decodeFile(path string, maxSize int) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Fit(img, maxSize), nil
}

// Done is closed once every request has resolved.
func (b *Batch) Done() <-chan struct{} { return b.done }

// Err returns the cancellation error after Done is closed.
func (b *Batch) Err() error {
	<-b.done
	return b.err
}
