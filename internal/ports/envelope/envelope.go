package envelope

// Envelope is the uniform two-field result wrapper every service operation
// returns, on success and on failure alike. The typed error returned next to
// it is what callers branch on; the envelope is what goes on the wire.
type Envelope struct {
	Dados    any    `json:"dados"`
	Mensagem string `json:"mensagem"`
}

// Erro is the failure payload placed in Dados when an operation fails.
type Erro struct {
	Erro string `json:"erro"`
}

func Sucesso(dados any, mensagem string) *Envelope {
	return &Envelope{Dados: dados, Mensagem: mensagem}
}

func Falha(err error, mensagem string) *Envelope {
	return &Envelope{Dados: Erro{Erro: err.Error()}, Mensagem: mensagem}
}
