package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/derros/go-diffuse-raytracer/pkg/output"
	"github.com/derros/go-diffuse-raytracer/pkg/renderer"
	"github.com/derros/go-diffuse-raytracer/pkg/scene"
	"github.com/derros/go-diffuse-raytracer/pkg/upload"
)

const (
	version      = "v1.0.0"
	previewWidth = 128
)

// renderConfig collects everything one render run needs
type renderConfig struct {
	Width        int
	Height       int
	Samples      int
	Depth        int
	Seed         int64
	Workers      int
	Supersample  int
	Format       string
	OutputDir    string
	Preview      bool
	UploadBucket string
}

func (c renderConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.Samples)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("bounce depth must be positive, got %d", c.Depth)
	}
	if c.Supersample < 1 {
		return fmt.Errorf("supersample factor must be at least 1, got %d", c.Supersample)
	}
	switch c.Format {
	case output.FormatPNG, output.FormatPPM, output.FormatWebP, output.FormatTGA:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "raytracer",
	Short: "A minimal diffuse ray tracer",
	Long: `Renders the fixed two-sphere scene with a pinhole camera and
recursive diffuse bounces, then writes the image as png, ppm, webp or
tga. Flags can also be set in a raytracer.yaml file in the working
directory or through RAYTRACER_* environment variables.`,
	Version:      version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfigFile(); err != nil {
			return err
		}
		return runRender(configFromViper())
	},
}

func init() {
	flags := rootCmd.Flags()
	// The camera's image plane is fixed at 2:1; other width:height
	// ratios render stretched
	flags.Int("width", 400, "image width in pixels")
	flags.Int("height", 200, "image height in pixels")
	flags.Int("samples", 100, "samples per pixel")
	flags.Int("depth", 50, "maximum bounce depth")
	flags.Int64("seed", 42, "random seed")
	flags.Int("workers", 0, "render workers (0 = one per CPU)")
	flags.Int("supersample", 1, "render at N times the resolution and downscale")
	flags.String("format", output.FormatPNG, "output format: png, ppm, webp or tga")
	flags.String("output", "output", "output directory")
	flags.Bool("preview", false, "also write a small preview thumbnail")
	flags.String("upload-bucket", "", "optional S3 bucket to publish the render to")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("RAYTRACER")
	viper.AutomaticEnv()
}

func loadConfigFile() error {
	viper.SetConfigName("raytracer")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func configFromViper() renderConfig {
	return renderConfig{
		Width:        viper.GetInt("width"),
		Height:       viper.GetInt("height"),
		Samples:      viper.GetInt("samples"),
		Depth:        viper.GetInt("depth"),
		Seed:         viper.GetInt64("seed"),
		Workers:      viper.GetInt("workers"),
		Supersample:  viper.GetInt("supersample"),
		Format:       viper.GetString("format"),
		OutputDir:    viper.GetString("output"),
		Preview:      viper.GetBool("preview"),
		UploadBucket: viper.GetString("upload-bucket"),
	}
}

// outputFilename builds a timestamped path inside the output directory
func outputFilename(dir, format string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format))
}

func runRender(cfg renderConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	sc := scene.NewDefaultScene()
	rt := renderer.NewRaytracer(sc, cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample)
	rt.SetSamplingConfig(renderer.SamplingConfig{
		SamplesPerPixel: cfg.Samples,
		MaxDepth:        cfg.Depth,
	})
	rt.SetSeed(cfg.Seed)

	fmt.Printf("Rendering %dx%d, %d samples/pixel, depth %d...\n",
		cfg.Width, cfg.Height, cfg.Samples, cfg.Depth)

	startTime := time.Now()
	img, stats := rt.RenderParallel(cfg.Workers)
	renderTime := time.Since(startTime)

	var final = img
	if cfg.Supersample > 1 {
		final = output.Downsample(img, cfg.Width, cfg.Height)
	}

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples: %d total over %d pixels\n", stats.TotalSamples, stats.TotalPixels)
	fmt.Printf("Luminance: mean %.4f, noise sigma %.4f\n",
		stats.MeanLuminance(), stats.LuminanceStdDev())

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var encoded bytes.Buffer
	if err := output.Encode(&encoded, final, cfg.Format); err != nil {
		return err
	}

	filename := outputFilename(cfg.OutputDir, cfg.Format, time.Now())
	if err := os.WriteFile(filename, encoded.Bytes(), 0644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	fmt.Printf("Image saved to: %s\n", filename)

	if cfg.Preview {
		if err := writePreview(final, filename); err != nil {
			return err
		}
	}

	if cfg.UploadBucket != "" {
		uploader, err := upload.NewUploader(upload.ConfigFromEnv(cfg.UploadBucket))
		if err != nil {
			return err
		}
		key := filepath.Base(filename)
		if err := uploader.Put(context.Background(), key, encoded.Bytes(), output.ContentType(cfg.Format)); err != nil {
			return err
		}
		fmt.Printf("Published to s3://%s/%s\n", cfg.UploadBucket, key)
	}

	return nil
}

// writePreview writes a small png thumbnail next to the full render
func writePreview(img image.Image, renderPath string) error {
	thumb := output.Thumbnail(img, previewWidth)

	ext := filepath.Ext(renderPath)
	previewPath := renderPath[:len(renderPath)-len(ext)] + "_preview.png"

	f, err := os.Create(previewPath)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()

	if err := output.Encode(f, thumb, output.FormatPNG); err != nil {
		return err
	}
	fmt.Printf("Preview saved to: %s\n", previewPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
