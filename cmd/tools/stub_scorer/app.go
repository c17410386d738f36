package main

import (
	"io"
	"mime/multipart"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type scoredResume struct {
	Filename   string         `json:"filename"`
	Score      float64        `json:"score"`
	TextLength int            `json:"text_length"`
	Details    map[string]any `json:"details"`
}

type scoringResponse struct {
	TopResume      *scoredResume  `json:"top_resume"`
	AllResults     []scoredResume `json:"all_results"`
	ProcessingTime float64        `json:"processing_time"`
}

var wordPattern = regexp.MustCompile(`[a-z0-9+#.]{3,}`)

var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true, "our": true, "are": true,
}

// newApp builds the stub service. A non-nil fixture is returned verbatim for every valid upload.
// Requests are logged to requestLog unless it is nil.
func newApp(fixture []byte, requestLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "stub_scorer",
		DisableStartupMessage: true,
		BodyLimit:             64 << 20,
	})
	app.Use(recover.New())
	if requestLog != nil {
		app.Use(logger.New(logger.Config{Output: requestLog}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "Backend running"})
	})

	app.Post("/upload", func(c *fiber.Ctx) error {
		start := time.Now()

		form, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to parse multipart form",
			})
		}

		job := strings.TrimSpace(first(form.Value["job_description"]))
		if job == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Job description is required",
			})
		}
		files := form.File["resumes"]
		if len(files) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "At least one resume file is required",
			})
		}

		if fixture != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(fixture)
		}

		keywords := tokenize(job)
		results := make([]scoredResume, 0, len(files))
		for _, fh := range files {
			text, err := readText(fh)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "failed to read " + fh.Filename,
				})
			}
			results = append(results, score(fh.Filename, text, keywords))
		}
		sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

		resp := scoringResponse{
			TopResume:      &results[0],
			AllResults:     results,
			ProcessingTime: time.Since(start).Seconds(),
		}
		return c.JSON(resp)
	})

	return app
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func readText(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// tokenize returns the distinct lowercase words of text in first-seen order.
func tokenize(text string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		w = strings.TrimRight(w, ".")
		if len(w) < 3 || seen[w] || stopWords[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

// score is the share of job keywords found in the resume text.
func score(filename, text string, keywords []string) scoredResume {
	present := make(map[string]bool)
	for _, w := range tokenize(text) {
		present[w] = true
	}

	matches := make([]string, 0)
	for _, k := range keywords {
		if present[k] {
			matches = append(matches, k)
		}
	}

	var s float64
	if len(keywords) > 0 {
		s = float64(len(matches)) / float64(len(keywords))
	}
	return scoredResume{
		Filename:   filename,
		Score:      s,
		TextLength: len(text),
		Details:    map[string]any{"matches": matches},
	}
}
