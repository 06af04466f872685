package stubgen

import "regexp"

var (
	// const fetchVenues = async (city) => ...
	arrowBinding = regexp.MustCompile(`(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>`)
	// async function getForecast(city) ...
	functionDecl = regexp.MustCompile(`(?:async\s+)?function\s+([A-Za-z_$][\w$]*)\s*\([^)]*\)`)
)

// ExtractFunctions returns the function names declared in src: arrow-function
// bindings first, then function declarations, each name once.
func ExtractFunctions(src []byte) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{arrowBinding, functionDecl} {
		for _, m := range re.FindAllSubmatch(src, -1) {
			name := string(m[1])
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
