package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"ui_mapping/application/resolver"
	"ui_mapping/domain/entities"
	"ui_mapping/domain/interfaces"
	"ui_mapping/infrastructure/ai"
	"ui_mapping/infrastructure/browser"
	"ui_mapping/infrastructure/storage"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type TerminalInterface struct {
	engine    *resolver.Engine
	extractor interfaces.PageExtractor
	enricher  interfaces.NameEnricher
	mapping   interfaces.MappingStorage
	logger    *logrus.Logger
	reader    *bufio.Reader
}

func NewTerminalInterface() (*TerminalInterface, error) {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		// .env file is optional
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	// Setup logger
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Enrichment is optional, capture falls back to rule-derived names
	var enricher interfaces.NameEnricher
	if os.Getenv("OPENAI_API_KEY") != "" {
		e, err := ai.NewOpenAIEnricher(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize enrichment client: %w", err)
		}
		enricher = e
	} else {
		logger.Info("OPENAI_API_KEY not set, name enrichment disabled")
	}

	return &TerminalInterface{
		engine:   resolver.NewEngine(resolver.DefaultConfig(), logger),
		enricher: enricher,
		mapping:  storage.NewMappingFile(logger),
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (t *TerminalInterface) Run() error {
	fmt.Println("UI Element Mapper")
	fmt.Println("=================")
	fmt.Println("Type 'help' for commands, 'quit' to exit")
	fmt.Println()

	for {
		fmt.Print("> ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "quit" || input == "exit" || input == "q" {
			fmt.Println("Bye!")
			return nil
		}

		if err := t.dispatch(input); err != nil {
			fmt.Printf("Error: %v\n\n", err)
		}
	}
}

func (t *TerminalInterface) Close() error {
	if t.extractor != nil {
		return t.extractor.Close()
	}
	return nil
}

func (t *TerminalInterface) dispatch(input string) error {
	fields := strings.Fields(input)
	command, args := fields[0], fields[1:]

	switch command {
	case "help":
		printHelp()
		return nil

	case "capture":
		if len(args) != 2 {
			return fmt.Errorf("usage: capture <context> <url>")
		}
		return t.capture(args[0], args[1])

	case "resolve":
		if len(args) == 0 {
			return fmt.Errorf("usage: resolve <query...> [@context]")
		}
		return t.resolve(args)

	case "save":
		if len(args) != 1 {
			return fmt.Errorf("usage: save <file>")
		}
		return t.save(args[0])

	case "load":
		if len(args) != 1 {
			return fmt.Errorf("usage: load <file>")
		}
		return t.load(args[0])

	case "contexts":
		contexts := t.engine.Contexts()
		if len(contexts) == 0 {
			fmt.Println("No contexts loaded")
		}
		for _, name := range contexts {
			fmt.Printf("%s (%d elements)\n", name, len(t.engine.Records(name)))
		}
		fmt.Println()
		return nil

	default:
		return fmt.Errorf("unknown command %q, type 'help'", command)
	}
}

// capture - extracts a page, optionally enriches the elements and loads
// them into the engine under the given feature context
func (t *TerminalInterface) capture(featureContext, url string) error {
	if t.extractor == nil {
		extractor, err := browser.NewPlaywrightExtractor(t.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize browser: %w", err)
		}
		t.extractor = extractor
	}

	ctx := context.Background()
	rawElements, err := t.extractor.ExtractPage(ctx, url, featureContext)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	records := make([]entities.ElementRecord, 0, len(rawElements))
	for _, raw := range rawElements {
		record := resolver.RecordFromRaw(featureContext, raw)

		if t.enricher != nil {
			identifier, names, err := t.enricher.Enrich(ctx, raw)
			if err != nil {
				t.logger.WithError(err).Warn("Enrichment failed, keeping rule-derived identifier")
			} else {
				record.Identifier = identifier
				record.AlternativeNames = append(record.AlternativeNames, names...)
			}
		}

		records = append(records, record)
	}

	if err := t.engine.Load(featureContext, records); err != nil {
		return err
	}

	fmt.Printf("Captured %d elements into context %q\n\n", len(records), featureContext)
	return nil
}

// resolve - resolves a query, printing the locator or the failure details
func (t *TerminalInterface) resolve(args []string) error {
	contextHint := ""
	if last := args[len(args)-1]; strings.HasPrefix(last, "@") {
		contextHint = strings.TrimPrefix(last, "@")
		args = args[:len(args)-1]
	}
	query := strings.Join(args, " ")

	locator, err := t.engine.Resolve(query, contextHint)
	if err == nil {
		fmt.Printf("Strategy:   %s\n", locator.Strategy)
		fmt.Printf("Expression: %s\n\n", locator.Expression)
		return nil
	}

	var ambiguous *resolver.AmbiguityError
	if errors.As(err, &ambiguous) {
		fmt.Printf("Query %q is ambiguous between:\n", query)
		for _, c := range ambiguous.Report.TiedCandidates {
			fmt.Printf("  %-40s context=%s score=%.1f via=%s\n",
				c.Record.Identifier, c.Record.FeatureContext, c.Score, c.MatchedVia)
		}
		fmt.Println("Try one of:")
		for _, suggestion := range ambiguous.Report.Suggestions {
			fmt.Printf("  resolve %s\n", suggestion)
		}
		fmt.Println()
		return nil
	}

	var notFound *resolver.NotFoundError
	if errors.As(err, &notFound) {
		fmt.Printf("No element matches %q\n\n", query)
		return nil
	}

	return err
}

// save - persists every loaded context to a mapping file
func (t *TerminalInterface) save(path string) error {
	contexts := make(map[string][]entities.ElementRecord)
	for _, name := range t.engine.Contexts() {
		contexts[name] = t.engine.Records(name)
	}
	if len(contexts) == 0 {
		return fmt.Errorf("nothing to save, capture or load a mapping first")
	}

	if err := t.mapping.Save(path, contexts); err != nil {
		return err
	}
	fmt.Printf("Saved %d contexts to %s\n\n", len(contexts), path)
	return nil
}

// load - loads a mapping file into the engine
func (t *TerminalInterface) load(path string) error {
	contexts, err := t.mapping.Load(path)
	if err != nil {
		return err
	}

	total := 0
	for name, records := range contexts {
		if err := t.engine.Load(name, records); err != nil {
			return err
		}
		total += len(records)
	}

	fmt.Printf("Loaded %d elements across %d contexts\n\n", total, len(contexts))
	return nil
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  capture <context> <url>        capture page elements into a feature context")
	fmt.Println("  resolve <query...> [@context]  resolve a query to a locator")
	fmt.Println("  save <file>                    save the loaded mapping to a JSON file")
	fmt.Println("  load <file>                    load a mapping from a JSON file")
	fmt.Println("  contexts                       list loaded feature contexts")
	fmt.Println("  quit                           exit")
	fmt.Println()
}
