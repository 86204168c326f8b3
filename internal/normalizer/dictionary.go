package normalizer

import "regexp"

// SkillPattern binds a canonical skill name to the regex that detects it.
type SkillPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// skillDictionary is the fixed, ordered dictionary searched by ExtractSkills.
// Iteration order is the deterministic insertion order of extracted skills, so
// entries are kept as a slice, not a map.
var skillDictionary = []SkillPattern{
	{"Python", regexp.MustCompile(`(?i)\bpython\b`)},
	{"Go", regexp.MustCompile(`(?i)\b(golang|go)\b`)},
	{"Java", regexp.MustCompile(`(?i)\bjava\b`)},
	{"JavaScript", regexp.MustCompile(`(?i)\b(javascript|js)\b`)},
	{"TypeScript", regexp.MustCompile(`(?i)\b(typescript|ts)\b`)},
	{"Ruby", regexp.MustCompile(`(?i)\bruby\b`)},
	{"PHP", regexp.MustCompile(`(?i)\bphp\b`)},
	{"C++", regexp.MustCompile(`(?i)c\+\+`)},
	{"C#", regexp.MustCompile(`(?i)c#|\bcsharp\b`)},
	{"Rust", regexp.MustCompile(`(?i)\brust\b`)},
	{"Kotlin", regexp.MustCompile(`(?i)\bkotlin\b`)},
	{"Swift", regexp.MustCompile(`(?i)\bswift\b`)},
	{"Scala", regexp.MustCompile(`(?i)\bscala\b`)},
	{"SQL", regexp.MustCompile(`(?i)\bsql\b`)},
	{"React", regexp.MustCompile(`(?i)\breact(\.js)?\b`)},
	{"Angular", regexp.MustCompile(`(?i)\bangular(js)?\b`)},
	{"Vue", regexp.MustCompile(`(?i)\bvue(\.js)?\b`)},
	{"Node.js", regexp.MustCompile(`(?i)\bnode(\.js)?\b`)},
	{"Django", regexp.MustCompile(`(?i)\bdjango\b`)},
	{"Flask", regexp.MustCompile(`(?i)\bflask\b`)},
	{"Rails", regexp.MustCompile(`(?i)\b(ruby on rails|rails)\b`)},
	{"Spring", regexp.MustCompile(`(?i)\bspring( boot)?\b`)},
	{"FastAPI", regexp.MustCompile(`(?i)\bfastapi\b`)},
	{"GraphQL", regexp.MustCompile(`(?i)\bgraphql\b`)},
	{"REST", regexp.MustCompile(`(?i)\brest(ful)?( api)?\b`)},
	{"gRPC", regexp.MustCompile(`(?i)\bgrpc\b`)},
	{"PostgreSQL", regexp.MustCompile(`(?i)\bpostgres(ql)?\b`)},
	{"MySQL", regexp.MustCompile(`(?i)\bmysql\b`)},
	{"MongoDB", regexp.MustCompile(`(?i)\bmongo(db)?\b`)},
	{"Redis", regexp.MustCompile(`(?i)\bredis\b`)},
	{"Elasticsearch", regexp.MustCompile(`(?i)\belastic(search)?\b`)},
	{"Kafka", regexp.MustCompile(`(?i)\bkafka\b`)},
	{"RabbitMQ", regexp.MustCompile(`(?i)\brabbitmq\b`)},
	{"Docker", regexp.MustCompile(`(?i)\bdocker\b`)},
	{"Kubernetes", regexp.MustCompile(`(?i)\b(kubernetes|k8s)\b`)},
	{"Terraform", regexp.MustCompile(`(?i)\bterraform\b`)},
	{"AWS", regexp.MustCompile(`(?i)\baws\b|\bamazon web services\b`)},
	{"GCP", regexp.MustCompile(`(?i)\bgcp\b|\bgoogle cloud\b`)},
	{"Azure", regexp.MustCompile(`(?i)\bazure\b`)},
	{"CI/CD", regexp.MustCompile(`(?i)\bci/?cd\b`)},
	{"Linux", regexp.MustCompile(`(?i)\blinux\b`)},
	{"Git", regexp.MustCompile(`(?i)\bgit\b`)},
	{"Machine Learning", regexp.MustCompile(`(?i)\bmachine learning\b|\bml\b`)},
	{"Deep Learning", regexp.MustCompile(`(?i)\bdeep learning\b`)},
	{"NLP", regexp.MustCompile(`(?i)\bnlp\b|\bnatural language processing\b`)},
	{"TensorFlow", regexp.MustCompile(`(?i)\btensorflow\b`)},
	{"PyTorch", regexp.MustCompile(`(?i)\bpytorch\b`)},
	{"Pandas", regexp.MustCompile(`(?i)\bpandas\b`)},
	{"Spark", regexp.MustCompile(`(?i)\b(apache )?spark\b`)},
	{"Tableau", regexp.MustCompile(`(?i)\btableau\b`)},
	{"Figma", regexp.MustCompile(`(?i)\bfigma\b`)},
	{"Agile", regexp.MustCompile(`(?i)\bagile\b|\bscrum\b`)},
}

// maxExtractedSkills caps the skill list returned per section.
const maxExtractedSkills = 20
