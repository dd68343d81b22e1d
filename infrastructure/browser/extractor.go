package browser

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"ui_mapping/domain/entities"
	"ui_mapping/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

type playwrightExtractor struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	logger  *logrus.Logger
}

// NewPlaywrightExtractor - launches a chromium instance used for page capture.
// Set UI_MAPPING_HEADLESS=false to watch the capture.
func NewPlaywrightExtractor(logger *logrus.Logger) (interfaces.PageExtractor, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	headless := os.Getenv("UI_MAPPING_HEADLESS") != "false"
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--disable-notifications",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &playwrightExtractor{
		pw:      pw,
		browser: browser,
		logger:  logger,
	}, nil
}

// ExtractPage - opens the URL and returns raw descriptors for every
// interactive element, each with a structural DOM path and a rule-derived
// identifier
func (e *playwrightExtractor) ExtractPage(ctx context.Context, url string, featureContext string) ([]entities.RawElement, error) {
	browserContext, err := e.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	defer browserContext.Close()

	page, err := browserContext.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	result, err := page.Evaluate(elementCollectorJS)
	if err != nil {
		return nil, fmt.Errorf("failed to extract elements: %w", err)
	}

	elementsData, ok := result.([]interface{})
	if !ok {
		return []entities.RawElement{}, nil
	}

	elements := make([]entities.RawElement, 0, len(elementsData))
	seenPaths := make(map[string]bool, len(elementsData))
	for _, elData := range elementsData {
		elMap, ok := elData.(map[string]interface{})
		if !ok {
			continue
		}

		element := entities.RawElement{
			TagName:    getString(elMap, "tagName"),
			Text:       getString(elMap, "text"),
			DOMPath:    getString(elMap, "domPath"),
			IsVisible:  getBool(elMap, "isVisible"),
			Attributes: make(map[string]string),
		}

		if element.DOMPath == "" || seenPaths[element.DOMPath] {
			continue
		}
		seenPaths[element.DOMPath] = true

		if pos, ok := elMap["position"].(map[string]interface{}); ok {
			element.Position.X = getInt(pos, "x")
			element.Position.Y = getInt(pos, "y")
		}

		if attrs, ok := elMap["attributes"].(map[string]interface{}); ok {
			for k, v := range attrs {
				if str, ok := v.(string); ok {
					element.Attributes[k] = str
				}
			}
		}

		element.Identifier = deriveIdentifier(featureContext, element, len(elements))
		elements = append(elements, element)
	}

	e.logger.WithFields(logrus.Fields{
		"url":      url,
		"context":  featureContext,
		"elements": len(elements),
	}).Info("Extracted page elements")

	return elements, nil
}

// Close - shuts down the browser and the playwright driver
func (e *playwrightExtractor) Close() error {
	var closeErr error
	if e.browser != nil {
		if err := e.browser.Close(); err != nil && !strings.Contains(err.Error(), "closed") {
			closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		e.browser = nil
	}
	if e.pw != nil {
		if err := e.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		e.pw = nil
	}
	return closeErr
}

// elementKind - maps a tag and its type attribute to the identifier's
// element-kind segment
func elementKind(tagName, typeAttr string) string {
	switch tagName {
	case "a":
		return "link"
	case "input":
		switch typeAttr {
		case "checkbox", "radio", "submit", "button", "file", "date", "password":
			return typeAttr + "_input"
		case "", "text", "email", "search", "tel", "url", "number":
			return "text_input"
		default:
			return "input"
		}
	case "select":
		return "dropdown"
	case "textarea":
		return "text_area"
	default:
		return tagName
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify - collapses a label into a snake_case identifier segment
func slugify(s string, maxLen int) string {
	s = slugStrip.ReplaceAllString(strings.ToLower(s), "_")
	s = strings.Trim(s, "_")
	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "_")
	}
	return s
}

// deriveIdentifier - builds the rule-based context_type_description key.
// Enrichment may later replace it with a better one; resolution works
// either way.
func deriveIdentifier(featureContext string, element entities.RawElement, index int) string {
	description := ""
	for _, attr := range []string{"data-testid", "data-qa", "name", "aria-label", "id", "placeholder"} {
		if v := element.Attributes[attr]; v != "" {
			description = v
			break
		}
	}
	if description == "" {
		description = element.Text
	}

	slug := slugify(description, 40)
	if slug == "" {
		slug = fmt.Sprintf("element_%d", index+1)
	}

	kind := elementKind(element.TagName, element.Attributes["type"])
	return fmt.Sprintf("%s_%s_%s", slugify(featureContext, 20), kind, slug)
}

// elementCollectorJS walks the DOM for interactive elements and reports
// tag, identifying attributes, trimmed text, a structural path and the
// bounding box center for each one
const elementCollectorJS = `
() => {
	const interactive = [
		'button', 'a', 'input', 'select', 'textarea',
		'[role="button"]', '[role="link"]', '[role="textbox"]',
		'[onclick]', '[data-testid]', '[data-qa]', '[aria-label]'
	];

	const domPath = (el) => {
		const parts = [];
		let node = el;
		while (node && node.nodeType === Node.ELEMENT_NODE && node.tagName !== 'HTML') {
			const tag = node.tagName.toLowerCase();
			let index = 1;
			let sibling = node.previousElementSibling;
			while (sibling) {
				if (sibling.tagName === node.tagName) index++;
				sibling = sibling.previousElementSibling;
			}
			parts.unshift(tag + '[' + index + ']');
			node = node.parentElement;
		}
		return '/html/' + parts.join('/');
	};

	const keepAttr = (name) =>
		name === 'id' || name === 'class' || name === 'name' || name === 'type' ||
		name === 'role' || name === 'placeholder' || name === 'href' ||
		name.startsWith('data-') || name.startsWith('aria-');

	const seen = new Set();
	const elements = [];

	interactive.forEach(selector => {
		document.querySelectorAll(selector).forEach(el => {
			if (seen.has(el)) return;
			seen.add(el);

			const rect = el.getBoundingClientRect();
			const style = window.getComputedStyle(el);
			const isVisible = rect.width > 0 && rect.height > 0 &&
				style.display !== 'none' && style.visibility !== 'hidden';

			const attributes = {};
			Array.from(el.attributes).forEach(attr => {
				if (keepAttr(attr.name)) attributes[attr.name] = attr.value;
			});

			const text = (el.value || el.placeholder || el.textContent || '').trim();

			elements.push({
				tagName: el.tagName.toLowerCase(),
				attributes: attributes,
				text: text.substring(0, 200),
				domPath: domPath(el),
				isVisible: isVisible,
				position: {
					x: Math.round(rect.left + rect.width / 2),
					y: Math.round(rect.top + rect.height / 2)
				}
			});
		});
	});

	return elements;
}
`

// getString - extracts string value from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// getBool - extracts boolean value from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// getInt - extracts integer value from map
func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		}
	}
	return 0
}
