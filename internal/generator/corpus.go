package generator

var commonWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "it", "for", "not", "on", "with", "he",
	"as", "you", "do", "at", "this", "but", "his", "by", "from", "they", "we", "say", "her", "she", "or",
	"an", "will", "my", "one", "all", "would", "there", "their", "what", "so", "up", "out", "if", "about",
	"who", "get", "which", "go", "me", "when", "make", "can", "like", "time", "no", "just", "him", "know",
	"take", "people", "into", "year", "your", "good", "some", "could", "them", "see", "other", "than",
	"then", "now", "look", "only", "come", "its", "over", "think", "also", "back", "after", "use", "two",
	"how", "our", "work", "first", "well", "way", "even", "new", "want", "because", "any", "these", "give",
	"day", "most", "us", "house", "world", "school", "still", "try", "hand", "small", "large", "part",
	"place", "again", "case", "week", "company", "system", "program", "question", "number", "night",
	"point", "fall", "glad", "flask", "shade", "dash", "jade", "salad", "ask", "sad", "lad", "had",
}

var complexWords = []string{
	"algorithm", "bandwidth", "compiler", "database", "encryption", "firewall", "goroutine", "hardware",
	"interface", "kernel", "latency", "network", "operating", "protocol", "quantum", "resolution",
	"software", "throughput", "absolute", "boundary", "character", "dialogue", "element", "fraction",
	"gradient", "horizon", "infinite", "junction", "kinetic", "molecule", "nebula", "optical",
	"particle", "resonance", "spectrum", "trajectory", "universe", "velocity", "wavelength", "zenith",
	"blueprint", "circuit", "dynamic", "equation", "frequency", "geometry", "hypothesis", "logistics",
	"magnetic", "optimization", "processor", "satellite", "telemetry", "vector", "wireless",
}

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Pack my box with five dozen liquor jugs.",
	"Sphinx of black quartz, judge my vow.",
	"How vexingly quick daft zebras jump!",
	"Simplicity is prerequisite for reliability.",
	"Clear is better than clever.",
	"Do not communicate by sharing memory; share memory by communicating.",
	"A journey of a thousand miles begins with a single step.",
	"Errors are values, so handle them with care.",
	"Practice does not make perfect; practice makes permanent.",
	"Slow is smooth, and smooth is fast.",
	"Measure twice and cut once.",
	"The best time to plant a tree was twenty years ago.",
	"Make it work, make it right, then make it fast.",
	"Keep your eyes on the text and your fingers on the home row.",
	"Every expert was once a beginner.",
	"A little progress each day adds up to big results.",
	"Accuracy first; speed follows on its own.",
}

var codeSnippets = []string{
	"func main() { fmt.Println(\"hello\") }",
	"if err != nil { return nil, err }",
	"for i := 0; i < len(items); i++ {",
	"defer func() { _ = f.Close() }()",
	"ctx, cancel := context.WithTimeout(ctx, 5*time.Second)",
	"type Store struct { db *sql.DB }",
	"select { case <-ctx.Done(): return ctx.Err() }",
	"m := make(map[string]int, len(keys))",
	"go func() { ch <- result }()",
	"return fmt.Errorf(\"open db: %w\", err)",
	"var wg sync.WaitGroup",
	"b, err := json.Marshal(&payload)",
	"sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })",
	"switch v := x.(type) { case string: }",
	"const maxRetries = 3",
	"rows, err := db.QueryContext(ctx, query, id)",
}

var properNames = []string{
	"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi", "Ivan", "Judy",
	"Mallory", "Oscar", "Peggy", "Rupert", "Sybil", "Trent", "Victor", "Walter", "Ada", "Linus",
}

var elitePatterns = []string{
	"45%", "$100", "24/7", "#1", "100kg", "360deg", "10px", "0.5", "1/2", "h4x0r", "n00b",
	"<br/>", "id=\"1\"", "w@rh34d", "2 + 2 = 4", "100%", "high-voltage", "O(n^2)", "C++", "C#",
	"user_id", "admin@root", "x := y", "a && b", "[]byte",
}

var punctuationMarks = []string{".", ",", "!", "?", ";", ":", "\""}

var homoglyphWords = map[string]string{
	"for": "4",
	"to":  "2",
	"you": "u",
	"are": "r",
	"at":  "@",
	"and": "&",
}

var leetSubstitutions = [][2]string{
	{"a", "4"},
	{"e", "3"},
	{"l", "1"},
	{"s", "$"},
}
