// groundchat answers questions about uploaded documents, grounded in
// SAP AI Core's document grounding service. This entrypoint wires the
// adapters to the core services and hands control to the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/groundchat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/groundchat/internal/adapters/driven/grounding/sap"
	"github.com/custodia-labs/groundchat/internal/adapters/driven/llm/genaihub"
	"github.com/custodia-labs/groundchat/internal/adapters/driven/oauth"
	"github.com/custodia-labs/groundchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/groundchat/internal/core/services"
	"github.com/custodia-labs/groundchat/internal/extractors"
	"github.com/custodia-labs/groundchat/internal/extractors/pdf"
	"github.com/custodia-labs/groundchat/internal/extractors/plaintext"
	"github.com/custodia-labs/groundchat/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cliServices := cli.Services{
		Settings: settingsService,
	}

	// Remote-backed services need complete SAP credentials. Without
	// them only configure and version are usable; the other commands
	// report that their service is not configured.
	if settings.SAP.IsConfigured() {
		tokens := oauth.NewTokenProvider(
			settings.SAP.AuthURL,
			settings.SAP.ClientID,
			settings.SAP.ClientSecret,
		)

		grounding, err := sap.NewStore(sap.Config{
			APIURL:         settings.SAP.APIURL,
			ResourceGroup:  settings.SAP.ResourceGroup,
			EmbeddingModel: settings.Grounding.EmbeddingModel,
		}, tokens)
		if err != nil {
			return fmt.Errorf("grounding store: %w", err)
		}

		llm, err := genaihub.NewLLMService(genaihub.Config{
			APIURL:        settings.SAP.APIURL,
			ResourceGroup: settings.SAP.ResourceGroup,
			Model:         settings.LLM.Model,
		}, tokens)
		if err != nil {
			return fmt.Errorf("llm service: %w", err)
		}

		prompts, err := file.NewPromptStore("")
		if err != nil {
			return fmt.Errorf("prompt store: %w", err)
		}

		registry := extractors.NewRegistry(plaintext.New())
		registry.Register(pdf.New())

		chatService := services.NewChatService(grounding, llm, services.ChatDefaults{
			Model:       settings.LLM.Model,
			Temperature: settings.LLM.Temperature,
			MaxTokens:   settings.LLM.MaxTokens,
		})
		chatService.SetPromptStore(prompts)

		cliServices.Documents = services.NewDocumentService(registry, grounding, settings.Chunking.ChunkSize)
		cliServices.Chat = chatService
		cliServices.Collections = services.NewCollectionService(grounding)

		cli.SetServeConfig(&cli.ServeConfig{
			Grounding: grounding,
			Prompts:   prompts,
			PromptDir: prompts.Dir(),
		})
	} else {
		logger.Debug("SAP credentials incomplete, remote services disabled: missing %v",
			settings.SAP.MissingFields())
	}

	cli.SetServices(cliServices)

	return cli.Execute()
}
