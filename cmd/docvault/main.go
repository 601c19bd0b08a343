// Command docvault is a personal document vault: it stores files in a
// content-addressed local store, extracts and indexes their text, and
// answers questions about them with an optional language model.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/docvault-labs/docvault/internal/adapters/driven/ai"
	"github.com/docvault-labs/docvault/internal/adapters/driven/blob/filesystem"
	configfile "github.com/docvault-labs/docvault/internal/adapters/driven/config/file"
	"github.com/docvault-labs/docvault/internal/adapters/driven/ocr/tesseract"
	"github.com/docvault-labs/docvault/internal/adapters/driven/pdf/poppler"
	"github.com/docvault-labs/docvault/internal/adapters/driven/storage/sqlite"
	"github.com/docvault-labs/docvault/internal/adapters/driving/cli"
	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/core/services"
	"github.com/docvault-labs/docvault/internal/extractors"
	docxextract "github.com/docvault-labs/docvault/internal/extractors/docx"
	imageextract "github.com/docvault-labs/docvault/internal/extractors/image"
	pdfextract "github.com/docvault-labs/docvault/internal/extractors/pdf"
	textextract "github.com/docvault-labs/docvault/internal/extractors/text"
	"github.com/docvault-labs/docvault/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("initialising prompt store: %w", err)
	}

	dataDir := config.GetString(driven.ConfigKeyDataDir)

	catalog, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	blobs, err := filesystem.NewBlobStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	settings := &domain.LLMSettings{
		Provider:          domain.AIProvider(config.GetString(driven.ConfigKeyLLMProvider)),
		Model:             config.GetString(driven.ConfigKeyLLMModel),
		APIKey:            config.GetString(driven.ConfigKeyLLMAPIKey),
		BaseURL:           config.GetString(driven.ConfigKeyLLMBaseURL),
		RequestsPerSecond: config.GetFloat(driven.ConfigKeyLLMRateLimit),
	}

	aiServices := ai.Initialise(settings)
	defer aiServices.Close()
	for _, warning := range aiServices.Warnings {
		logger.Warn("%s", warning)
	}

	var ocrService driven.OCRService
	if svc, err := tesseract.New(config.GetString(driven.ConfigKeyOCRBinary)); err != nil {
		logger.Debug("OCR unavailable: %v", err)
	} else {
		ocrService = svc
	}

	pdfService := poppler.New(poppler.Config{
		PDFToText:  config.GetString(driven.ConfigKeyPDFToText),
		PDFToImage: config.GetString(driven.ConfigKeyPDFToImage),
	})

	registry := extractors.NewRegistry()
	registry.Register(textextract.New())
	registry.Register(docxextract.New())
	registry.Register(pdfextract.New(pdfService, ocrService))
	registry.Register(imageextract.New(aiServices.VisionService, ocrService))

	tagger := services.NewTagger(aiServices.LLMService, prompts)
	ingest := services.NewIngestionService(
		catalog, blobs, registry, tagger,
		int64(config.GetInt(driven.ConfigKeyMaxFileSize)))
	search := services.NewRetrievalService(catalog, aiServices.LLMService, prompts)
	answer := services.NewAnswerSynthesisService(
		catalog, blobs, registry, aiServices.LLMService, prompts,
		config.GetInt(driven.ConfigKeyAnswerWorkers))
	document := services.NewDocumentService(catalog, blobs, registry)

	cli.SetVersion(version)
	cli.SetConfigStore(config)
	cli.SetWatchDir(config.GetString(driven.ConfigKeyWatchDir))
	cli.SetServices(cli.Services{
		Ingest:   ingest,
		Search:   search,
		Answer:   answer,
		Document: document,
	})

	return cli.ExecuteContext(ctx)
}
