package queryexpand

// Synonym tables grouped by department. Order matters: earlier keys
// win when a word matches more than one key loosely.
var defaultExpansions = []expansion{
	// TI
	{"senha", []string{"password", "login", "acesso", "autenticacao", "credencial"}},
	{"login", []string{"senha", "acesso", "entrar", "logar", "usuario"}},
	{"acesso", []string{"senha", "login", "permissao", "autorizacao", "entrar"}},
	{"bloqueado", []string{"travado", "bloqueio", "locked", "impedido"}},
	{"email", []string{"e-mail", "correio", "outlook", "webmail", "mensagem"}},
	{"internet", []string{"rede", "conexao", "wifi", "network", "conectividade"}},
	{"vpn", []string{"rede privada", "acesso remoto", "conexao segura"}},
	{"impressora", []string{"imprimir", "impressao", "printer"}},
	{"sistema", []string{"aplicacao", "programa", "software", "aplicativo"}},
	{"instalar", []string{"instalacao", "setup", "configurar", "baixar"}},
	{"erro", []string{"falha", "problema", "bug", "defeito"}},
	{"lento", []string{"devagar", "travando", "performance", "lag"}},
	{"computador", []string{"pc", "notebook", "laptop", "maquina"}},
	{"backup", []string{"copia seguranca", "recuperacao", "restaurar"}},
	{"servidor", []string{"server", "host", "infraestrutura"}},

	// RH
	{"ferias", []string{"recesso", "descanso", "afastamento ferias", "gozo"}},
	{"salario", []string{"remuneracao", "pagamento", "vencimento", "proventos"}},
	{"holerite", []string{"contracheque", "folha pagamento", "demonstrativo"}},
	{"ponto", []string{"frequencia", "registro ponto", "cartao ponto", "horario"}},
	{"atestado", []string{"licenca medica", "afastamento medico", "cid"}},
	{"beneficios", []string{"vale transporte", "vale refeicao", "plano saude"}},
	{"admissao", []string{"contratacao", "integracao", "onboarding", "entrada"}},
	{"demissao", []string{"desligamento", "rescisao", "termino contrato", "saida"}},
	{"licenca", []string{"afastamento", "ausencia", "dispensa", "permissao"}},
	{"treinamento", []string{"capacitacao", "curso", "desenvolvimento", "formacao"}},
	{"colaborador", []string{"funcionario", "empregado", "trabalhador"}},
	{"folha", []string{"folha pagamento", "holerite", "demonstrativo"}},
	{"fgts", []string{"fundo garantia", "saque fgts", "deposito"}},
	{"inss", []string{"previdencia", "contribuicao", "aposentadoria"}},

	// Financeiro
	{"nota fiscal", []string{"nf", "nfe", "nfse", "danfe", "fatura"}},
	{"nfe", []string{"nota fiscal eletronica", "nf-e", "danfe"}},
	{"pagamento", []string{"pagar", "quitacao", "liquidacao", "desembolso"}},
	{"boleto", []string{"guia pagamento", "fatura", "cobranca"}},
	{"reembolso", []string{"ressarcimento", "devolucao", "restituicao"}},
	{"despesa", []string{"custo", "gasto", "dispendio", "debito"}},
	{"orcamento", []string{"planejamento", "previsao", "budget", "estimativa"}},
	{"fatura", []string{"nota fiscal", "boleto", "conta", "invoice"}},
	{"cobranca", []string{"faturamento", "debito", "valor devido"}},
	{"centro custo", []string{"cc", "departamento", "setor"}},
	{"adiantamento", []string{"antecipacao", "provisionamento"}},
	{"tributo", []string{"imposto", "taxa", "contribuicao"}},
	{"contabilidade", []string{"escrituracao", "lancamento", "balanco"}},

	// Jurídico
	{"processo", []string{"acao", "demanda", "litigio", "causa"}},
	{"clausula", []string{"dispositivo", "artigo", "item", "paragrafo"}},
	{"acordo", []string{"transacao", "ajuste", "pacto"}},
	{"multa", []string{"penalidade", "sancao", "pena"}},
	{"lei", []string{"legislacao", "norma", "dispositivo legal", "regra"}},
	{"contrato", []string{"acordo", "instrumento", "pacto", "termo"}},
	{"procuracao", []string{"mandato", "poderes", "representacao"}},
	{"alvara", []string{"licenca", "autorizacao", "permissao judicial"}},

	// Gerais
	{"como", []string{"de que forma", "de que maneira", "procedimento"}},
	{"onde", []string{"local", "lugar", "em qual", "localizacao"}},
	{"quando", []string{"prazo", "data", "periodo", "momento"}},
	{"quem", []string{"responsavel", "pessoa", "setor"}},
	{"solicitar", []string{"pedir", "requerer", "requisitar", "demandar"}},
	{"documento", []string{"arquivo", "file", "texto", "papel"}},
	{"formulario", []string{"form", "requerimento", "solicitacao", "ficha"}},
	{"procedimento", []string{"processo", "rotina", "passo passo", "instrucao"}},
	{"prazo", []string{"tempo", "periodo", "deadline", "limite"}},
	{"cancelar", []string{"anular", "revogar", "desfazer", "rescindir"}},
	{"alterar", []string{"modificar", "mudar", "ajustar", "corrigir"}},
}
