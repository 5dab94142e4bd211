package answer

import (
	"fmt"
	"strings"

	"github.com/atendia/respondex/internal/domain"
)

// buildContext concatenates retrieved documents into the knowledge
// block fed to the LLM.
func buildContext(documents []domain.Document) string {
	parts := make([]string, len(documents))
	for i, d := range documents {
		parts[i] = fmt.Sprintf("[%s] %s\n%s\n", d.Category, d.Title, d.Content)
	}
	return strings.Join(parts, "\n---\n")
}

// buildPrompt assembles the answer-generation prompt. departments may
// be empty; confidence is the pipeline confidence score.
func buildPrompt(question, context string, departments []string, confidence float64) string {
	var b strings.Builder

	b.WriteString("Você é um assistente técnico experiente da empresa.\n\n")
	if len(departments) > 0 && departments[0] != "Geral" {
		fmt.Fprintf(&b, "ÁREA PROVÁVEL DA PERGUNTA: %s (confiança %.2f)\n\n",
			strings.Join(departments, ", "), confidence)
	}
	b.WriteString("Você tem conhecimento sobre os procedimentos e soluções documentados pelas equipes internas:\n\n")
	b.WriteString(context)
	b.WriteString("\n\nCom base no seu conhecimento acima, responda à seguinte pergunta do usuário:\n\n")
	b.WriteString(question)
	b.WriteString("\n\nINSTRUÇÕES DE CONTEÚDO:\n" +
		"- Responda de forma DIRETA e NATURAL, como um especialista\n" +
		"- NÃO mencione artigos, documentos ou base de conhecimento\n" +
		"- Sintetize tudo em UMA resposta coesa e bem estruturada\n" +
		"- Seja prático, objetivo e útil\n" +
		"- Use português brasileiro\n\n" +
		"INSTRUÇÕES DE FORMATAÇÃO MARKDOWN:\n" +
		"1. Use ## para título principal (quando apropriado)\n" +
		"2. Use ### para subtítulos de seções\n" +
		"3. Use **negrito** para destacar pontos importantes\n" +
		"4. Use `código` para nomes de arquivos, comandos, caminhos\n" +
		"5. Use listas numeradas para procedimentos passo a passo\n" +
		"6. Use > para avisos/alertas importantes\n\n" +
		"Responda à pergunta com formatação markdown clara e profissional.")
	b.WriteString("\n\n[RESTRIÇÃO] RESPONDA SOMENTE com base no CONTEXTO acima. " +
		"Se o contexto não tiver informações suficientes, diga explicitamente que não há informação suficiente e sugira o próximo passo.")
	b.WriteString("\n[SEGURANÇA] Não exponha credenciais internas (senhas, tokens ou links internos). " +
		"Se for necessário mencionar credenciais, instrua a política sem revelar valores.")

	return b.String()
}

// noContextAnswer is returned when retrieval finds nothing relevant.
const noContextAnswer = "## Informação Não Disponível\n\n" +
	"Desculpe, não tenho informações sobre esse assunto específico no momento.\n\n" +
	"### O que você pode fazer:\n\n" +
	"1. Reformular a pergunta — tente usar palavras diferentes ou ser mais específico\n" +
	"2. Consultar a base de conhecimento — verifique se há documentação disponível\n" +
	"3. Abrir um chamado — a equipe responsável poderá ajudar diretamente\n\n" +
	"> **Dica**: Para questões urgentes, contate o suporte diretamente."
