package contract

// ResultSuccess is embedded by every success payload so all responses carry
// the uniform `"result": true` marker.
type ResultSuccess struct {
	Result bool `json:"result"`
}

func OK() ResultSuccess {
	return ResultSuccess{Result: true}
}
