package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aydinemre/tubesum/internal/core/config"
	"github.com/aydinemre/tubesum/internal/core/output"
	"github.com/aydinemre/tubesum/internal/core/prompt"
	"github.com/aydinemre/tubesum/internal/core/provider"
	"github.com/aydinemre/tubesum/internal/core/summarize"
	"github.com/aydinemre/tubesum/internal/core/transcript"
	"github.com/aydinemre/tubesum/internal/core/version"
	"github.com/aydinemre/tubesum/internal/core/voice"
)

var (
	personaFlag    string
	lengthFlag     string
	languageFlag   string
	providerFlag   string
	outputFlag     string
	voiceFlag      bool
	transcriptFlag bool
)

var rootCmd = &cobra.Command{
	Use:     "tubesum [url]",
	Short:   "Summarize YouTube videos with AI and chat about them",
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		if err := runSummarize(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&personaFlag, "persona", "third-person", "summary voice: first-person or third-person")
	rootCmd.Flags().StringVar(&lengthFlag, "length", "short", "summary length: short or long")
	rootCmd.Flags().StringVarP(&languageFlag, "language", "l", "", "output language (default: same as the video)")
	rootCmd.Flags().StringVarP(&providerFlag, "provider", "m", "openai", "AI provider: openai, anthropic, gemini, qwen")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output markdown file (default: <video-id>.summary.md)")
	rootCmd.Flags().BoolVar(&voiceFlag, "voice", false, "also synthesize the summary as speech")
	rootCmd.Flags().BoolVar(&transcriptFlag, "transcript", false, "also save the raw transcript as markdown")
}

func Execute() error {
	return rootCmd.Execute()
}

func runSummarize(url string) error {
	cfg := config.LoadOrDefault()

	if !config.Exists() {
		color.Yellow("Config file not found. Run 'tubesum init' to create one.")
	}

	opts, err := parseSummaryOptions()
	if err != nil {
		return err
	}

	videoID, err := transcript.VideoID(url)
	if err != nil {
		return fmt.Errorf("please enter a valid YouTube URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Printf("  Fetching transcript for %s...\n", videoID)
	fetcher := transcript.NewFetcher(cfg.Languages())
	chunks, err := fetcher.Fetch(ctx, videoID)
	if err != nil {
		return fmt.Errorf("transcript could not be obtained: %w", err)
	}
	fmt.Printf("  Transcript: %d chunks\n", len(chunks))

	if transcriptFlag {
		path := videoID + ".transcript.md"
		if err := output.WriteTranscript(path, videoID, chunks); err != nil {
			return err
		}
		fmt.Printf("  Transcript saved: %s\n", path)
	}

	if !provider.IsAvailable(providerFlag) {
		info, ok := provider.Lookup(providerFlag)
		if !ok {
			return fmt.Errorf("unknown provider: %s", providerFlag)
		}
		return fmt.Errorf("no API key was found for the chosen model (set %s)", info.Credential)
	}
	client := provider.Instantiate(providerFlag, cfg)

	fmt.Printf("  Summarizing with %s...\n", client.Name())
	summary, err := summarize.Summarize(ctx, chunks, opts, client)
	if err != nil {
		return err
	}

	outPath := outputFlag
	if outPath == "" {
		outPath = videoID + ".summary.md"
	}
	if err := output.WriteSummary(outPath, videoID, personaFlag, lengthFlag, displayLanguage(opts.Language), summary); err != nil {
		return err
	}

	color.Green("  Summary saved: %s", outPath)
	fmt.Println()
	fmt.Println(summary)

	if voiceFlag {
		return narrate(ctx, outPath, summary)
	}
	return nil
}

func narrate(ctx context.Context, summaryPath, summary string) error {
	narrator := voice.New(filepath.Dir(absOrDot(summaryPath)))
	if !narrator.Available() {
		color.Yellow("Audio unavailable: %s is not set.", voice.CredentialEnv)
		return nil
	}
	audioPath, err := narrator.Synthesize(ctx, summary)
	if err != nil {
		color.Yellow("Audio unavailable: %v", err)
		return nil
	}
	if d, err := voice.Duration(audioPath); err == nil {
		fmt.Printf("  Audio saved: %s (%s)\n", audioPath, d.Round(time.Second))
	} else {
		fmt.Printf("  Audio saved: %s\n", audioPath)
	}
	return nil
}

func absOrDot(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "."
	}
	return abs
}

func parseSummaryOptions() (summarize.Options, error) {
	var opts summarize.Options

	switch strings.ToLower(personaFlag) {
	case "first-person", "first":
		opts.Persona = prompt.FirstPerson
	case "third-person", "third":
		opts.Persona = prompt.ThirdPerson
	default:
		return opts, fmt.Errorf("invalid persona %q: use first-person or third-person", personaFlag)
	}

	switch strings.ToLower(lengthFlag) {
	case "short":
		opts.Length = prompt.Short
	case "long":
		opts.Length = prompt.Long
	default:
		return opts, fmt.Errorf("invalid length %q: use short or long", lengthFlag)
	}

	if languageFlag != "" && languageFlag != prompt.OriginalLanguage {
		if !prompt.IsLanguage(languageFlag) {
			return opts, fmt.Errorf("unsupported language %q (supported: %s)", languageFlag, strings.Join(prompt.Languages[1:], ", "))
		}
		opts.Language = languageFlag
	}

	return opts, nil
}

func displayLanguage(language string) string {
	if language == "" {
		return prompt.OriginalLanguage
	}
	return language
}
