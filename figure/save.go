package figure

import (
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
)

// RasterDPI is the resolution of the PNG artifact. The SVG artifact is
// resolution-independent.
const RasterDPI = 300

// Save writes the chart as name.svg and name.png. The two renders are
// independent, so they run concurrently. Output paths go through
// grailbio/base/file, so name may carry any supported scheme.
func Save(bc *chart.BarChart, name string) error {
	type format struct {
		ext      string
		provider chart.RendererProvider
		dpi      float64
	}
	formats := []format{
		{".svg", chart.SVG, 0},
		{".png", chart.PNG, RasterDPI},
	}
	err := traverse.Each(len(formats), func(i int) (err error) {
		f := formats[i]
		path := name + f.ext
		ctx := vcontext.Background()
		out, err := file.Create(ctx, path)
		if err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		defer file.CloseAndReport(ctx, out, &err)
		render := *bc
		if f.dpi != 0 {
			render.DPI = f.dpi
		}
		if err := render.Render(f.provider, out.Writer(ctx)); err != nil {
			return errors.Wrapf(err, "rendering %s", path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("wrote %s.svg and %s.png", name, name)
	return nil
}
