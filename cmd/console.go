package main

import (
	"bufio"
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/xhad/askdocs/internal/types"
)

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// runConsole is a terminal chat session against the same pipeline the HTTP
// server exposes. Pasting a URL ingests it before the question is answered.
func runConsole(p types.Pipeline) {
	color.Cyan("\nChat with your documents (type 'exit' to quit)")

	scanner := bufio.NewScanner(os.Stdin)
	userPrompt := color.New(color.FgGreen).PrintfFunc()
	assistantPrompt := color.New(color.FgCyan).PrintfFunc()
	urlRegex := regexp.MustCompile(`https?://[^\s]+`)

	for {
		userPrompt("\nYou: ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if strings.ToLower(query) == "exit" {
			break
		}
		if query == "" {
			continue
		}

		if url := urlRegex.FindString(query); url != "" {
			spinner := getSpinner(" Fetching and indexing...")
			count, err := p.IngestURLs(context.Background(), []string{url})
			spinner.Finish()

			if err != nil {
				color.Red("Failed to process URL: %v\n", err)
				continue
			}
			color.Green("✓ Indexed %d chunks\n", count)

			// Nothing left to answer if the input was just the URL
			if query == url {
				continue
			}
		}

		spinner := getSpinner(" Thinking...")
		answer, err := p.Answer(context.Background(), query)
		spinner.Finish()

		if err != nil {
			color.Red("Error: %v\n", err)
			continue
		}

		assistantPrompt("\nAssistant: %s\n", strings.TrimSpace(answer.Answer))
		if answer.Sources != "" {
			color.Blue("Source: %s\n", answer.Sources)
		}
	}
}
