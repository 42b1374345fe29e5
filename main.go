package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/ByLCY/textart/binding"
	"github.com/ByLCY/textart/font"
	"github.com/ByLCY/textart/fontspec"
	"github.com/ByLCY/textart/imageio"
	"github.com/ByLCY/textart/renderer"
	canvasrenderer "github.com/ByLCY/textart/renderer/canvas"
	sfntrenderer "github.com/ByLCY/textart/renderer/sfnt"
)

// options 汇总命令行参数。
type options struct {
	text        string
	font        string
	backend     string
	output      string
	format      string
	dataJSON    string
	systemFonts bool
	verbose     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.text, "text", "", "要渲染的文本（为空时使用剩余参数）")
	flag.StringVar(&opts.font, "font", font.Default().String(), "字体描述，例如 Serif-BOLD-12 或 \"DejaVu Serif\" italic 14pt")
	flag.StringVar(&opts.backend, "backend", "canvas", "渲染后端：canvas 或 sfnt")
	flag.StringVar(&opts.output, "out", "", "图像输出路径，- 表示标准输出；为空时输出 ASCII 字符画")
	flag.StringVar(&opts.format, "format", "png", "输出到标准输出时的图像格式（"+strings.Join(imageio.Names(), ", ")+"）")
	flag.StringVar(&opts.dataJSON, "data", "", "绑定到文本 ${...} 占位符的 JSON 数据")
	flag.BoolVar(&opts.systemFonts, "system-fonts", true, "查找系统字体；关闭时使用内置 Go 字体")
	flag.BoolVar(&opts.verbose, "v", false, "输出调试日志")
	flag.Parse()

	if opts.text == "" {
		opts.text = strings.Join(flag.Args(), " ")
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(opts, os.Stdout, logger); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
}

// run 串联字体解析、文本绑定与渲染输出。
func run(opts options, stdout io.Writer, logger *slog.Logger) error {
	if strings.TrimSpace(opts.text) == "" {
		return errors.New("文本不能为空")
	}
	cfg, err := fontspec.Parse(opts.font, font.Default())
	if err != nil {
		return fmt.Errorf("解析字体描述失败: %w", err)
	}
	text := opts.text
	if opts.dataJSON != "" {
		text = binding.Interpolate(text, []byte(opts.dataJSON))
	}

	backend, err := newBackend(opts.backend)
	if err != nil {
		return err
	}
	resolver := font.NewResolver(
		font.WithSystemFonts(opts.systemFonts),
		font.WithResolverLogger(logger),
	)
	r := renderer.New(backend, renderer.WithLogger(logger), renderer.WithResolver(resolver))

	switch opts.output {
	case "":
		art, err := r.ASCIIArt(text, cfg)
		if err != nil {
			return fmt.Errorf("生成字符画失败: %w", err)
		}
		_, err = io.WriteString(stdout, art)
		return err
	case "-":
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("拒绝向终端写入二进制图像，请重定向标准输出或使用 -out 指定文件")
		}
		if err := r.EncodeToStream(text, cfg, opts.format, stdout); err != nil {
			return fmt.Errorf("输出图像失败: %w", err)
		}
		return nil
	default:
		if dir := filepath.Dir(opts.output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("创建输出目录失败: %w", err)
			}
		}
		if err := r.EncodeToFile(text, cfg, opts.output); err != nil {
			return fmt.Errorf("写入图像文件失败: %w", err)
		}
		logger.Info("已生成图像", "path", opts.output, "font", cfg.String())
		return nil
	}
}

func newBackend(name string) (renderer.Backend, error) {
	switch strings.ToLower(name) {
	case "", "canvas":
		return canvasrenderer.NewRenderer(), nil
	case "sfnt":
		return sfntrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("未知的渲染后端 %q（可选 canvas、sfnt）", name)
	}
}
