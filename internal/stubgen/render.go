package stubgen

import (
	"bytes"
	"text/template"
	"time"
)

// Template is the data a test stub is rendered from.
type Template struct {
	// Module is the source file name without its extension.
	Module string
	// Ext is the source extension, including the dot.
	Ext         string
	Functions   []string
	GeneratedAt time.Time
}

var stubTemplate = template.Must(template.New("stub").Parse(`/**
 * Auto-generated unit tests for {{.Module}}{{.Ext}}
 * Generated on: {{.GeneratedAt.UTC.Format "2006-01-02T15:04:05.000Z07:00"}}
 *
 * IMPORTANT: Please review and customize these tests.
 * These are template tests and may need adjustment based on the actual implementation.
 */

// Mock fetch for API calls
global.fetch = jest.fn();

// Mock jQuery if needed
global.$ = jest.fn((selector) => ({
  val: jest.fn(),
  append: jest.fn(),
  empty: jest.fn(),
  click: jest.fn(),
  css: jest.fn(),
}));

describe('{{.Module}}', () => {
{{- range .Functions}}

  describe('{{.}}', () => {
    beforeEach(() => {
      jest.clearAllMocks();
    });

    test('should be defined', () => {
      expect({{.}}).toBeDefined();
      expect(typeof {{.}}).toBe('function');
    });

    test('should handle normal execution', async () => {
      // TODO: Add specific test implementation
      const result = await {{.}}();
      expect(result).toBeDefined();
    });

    test('should handle errors gracefully', async () => {
      // TODO: Mock error conditions and verify proper handling
    });
  });
{{- end}}

  // Integration tests
  describe('Integration tests', () => {
    test('should work together correctly', () => {
      // TODO: Add integration tests if multiple functions interact
    });
  });
});
`))

// Render returns the Jest test stub for t.
func Render(t Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := stubTemplate.Execute(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
