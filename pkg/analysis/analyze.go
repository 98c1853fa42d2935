package analysis

// Options tunes Analyze and AnalyzeAll. The zero value uses Builtins and no
// aliases.
type Options struct {
	Builtins map[string]bool
	Aliases  map[string]string
}

func (o Options) builtins() map[string]bool {
	if o.Builtins == nil {
		return Builtins
	}
	return o.Builtins
}

// Result is the combined analysis of a package's sources.
type Result struct {
	Metadata Metadata `json:"metadata"`
	// Dependencies are resolved catalog ids in discovery order.
	Dependencies []string `json:"dependencies"`
	// Unresolved are filtered candidates that matched no catalog id.
	Unresolved []string  `json:"unresolved"`
	Security   Security  `json:"security"`
	Warnings   []Warning `json:"warnings"`
}

// Analyze extracts metadata from file and resolves its dependencies against
// known, which may be nil.
func Analyze(file SourceFile, known KnownIDs) Result {
	return AnalyzeAll([]SourceFile{file}, known, Options{})
}

// AnalyzeAll analyzes a multi-file package. Metadata comes from the first
// file; requires and security signals of all files are combined in file
// order. An empty file list yields a zero Result.
func AnalyzeAll(files []SourceFile, known KnownIDs, opts Options) Result {
	res := Result{
		Dependencies: []string{},
		Unresolved:   []string{},
		Security:     Security{FilePaths: []string{}},
		Warnings:     []Warning{},
	}
	if len(files) == 0 {
		return res
	}

	res.Metadata = ExtractMetadata(files[0].Content, files[0].Name)

	var candidates []string
	for _, f := range files {
		scan := ScanWith(f.Content, res.Metadata.ID, opts.builtins())
		candidates = append(candidates, scan.Candidates...)
		res.Security.merge(scan.Security)
		for _, w := range DynamicRequires(f.Content) {
			w.File = f.Name
			res.Warnings = append(res.Warnings, w)
		}
	}

	r := Resolver{Known: known, Aliases: opts.Aliases}
	res.Dependencies, res.Unresolved = r.ResolveAll(candidates)
	return res
}
