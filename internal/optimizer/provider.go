package optimizer

// Provider is a chat-completions compatible AI platform preset
type Provider struct {
	ID        string
	Name      string
	APIURL    string
	APIKeyURL string
	Models    []string // first entry is the default
}

const (
	DefaultProvider = "dashscope"
	DefaultModel    = "qwen-plus"
	// CustomProvider takes its URL and model from the request
	CustomProvider = "custom"
)

// Providers lists the supported presets
var Providers = []Provider{
	{
		ID:        "dashscope",
		Name:      "Alibaba Cloud Bailian (DashScope)",
		APIURL:    "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions",
		APIKeyURL: "https://bailian.console.aliyun.com/?apiKey=1",
		Models:    []string{"qwen-plus", "qwen-turbo", "qwen-max", "qwen-long", "deepseek-v3", "deepseek-r1", "deepseek-chat"},
	},
	{
		ID:        "modelscope",
		Name:      "ModelScope",
		APIURL:    "https://api-inference.modelscope.cn/v1/chat/completions",
		APIKeyURL: "https://modelscope.cn/my/myaccesstoken",
		Models: []string{
			"Qwen/Qwen3-32B",
			"Qwen/Qwen3-235B-A22B",
			"Qwen/Qwen2.5-Coder-32B-Instruct",
			"Qwen/Qwen2.5-72B-Instruct",
			"Qwen/Qwen2.5-32B-Instruct",
			"Qwen/Qwen2.5-7B-Instruct",
			"deepseek-ai/DeepSeek-R1-0528",
		},
	},
	{
		ID:        "siliconflow",
		Name:      "SiliconFlow",
		APIURL:    "https://api.siliconflow.cn/v1/chat/completions",
		APIKeyURL: "https://cloud.siliconflow.cn/account/ak",
		Models: []string{
			"Qwen/Qwen2.5-72B-Instruct",
			"Qwen/Qwen2.5-32B-Instruct",
			"Qwen/Qwen2.5-Coder-32B-Instruct",
			"deepseek-ai/DeepSeek-V3",
			"deepseek-ai/DeepSeek-R1",
			"THUDM/glm-4-9b-chat",
			"internlm/internlm2_5-20b-chat",
		},
	},
	{
		ID:        "deepseek",
		Name:      "DeepSeek",
		APIURL:    "https://api.deepseek.com/chat/completions",
		APIKeyURL: "https://platform.deepseek.com/api_keys",
		Models:    []string{"deepseek-chat", "deepseek-reasoner"},
	},
	{
		ID:        "openai",
		Name:      "OpenAI",
		APIURL:    "https://api.openai.com/v1/chat/completions",
		APIKeyURL: "https://platform.openai.com/api-keys",
		Models:    []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
	},
	{
		ID:   CustomProvider,
		Name: "Custom (OpenAI compatible)",
	},
}

// LookupProvider finds a preset by ID
func LookupProvider(id string) (Provider, bool) {
	for _, p := range Providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// DefaultModelFor returns the first model of a preset, or DefaultModel
func DefaultModelFor(id string) string {
	if p, ok := LookupProvider(id); ok && len(p.Models) > 0 {
		return p.Models[0]
	}
	return DefaultModel
}
