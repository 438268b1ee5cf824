package bot

// Reply texts. Telegram renders these as Markdown.

const welcomeMessage = `🤖 **Bot de Controle Financeiro Pessoal**

Olá! Eu sou seu assistente financeiro pessoal.

📝 **Como usar:**

**Para despesas:**
` + "`valor - tipo de pagamento - categoria (descrição)`" + `

**Para créditos:**
` + "`valor - credito`" + `

**Para investimentos:**
` + "`valor - investimento - categoria`" + `

**Exemplos:**
• ` + "`100.50 - Cartão Visa - Alimentação (supermercado)`" + `
• ` + "`50.00 - Dinheiro - Transporte (uber)`" + `
• ` + "`1500.00 - credito`" + `
• ` + "`500.00 - investimento - Renda Fixa`" + `

📊 **Comandos disponíveis:**
• /start - Mostra esta mensagem
• /statistics - Gera o relatório financeiro completo
• /clearTable - Limpa todos os dados (cuidado!)

💡 **Dicas:**
- O valor pode usar vírgula ou ponto
- Não é obrigatório incluir centavos
- Para despesas, mantenha sempre os hífens (-) separando os campos
- A descrição deve estar entre parênteses

Vamos começar a controlar suas finanças pessoais! 💰`

const invalidFormatMessage = `❌ Formato inválido! Use:

**Para despesas:**
` + "`valor - tipo de pagamento - categoria (descrição)`" + `
Exemplo: ` + "`50.00 - Dinheiro - Transporte (uber)`" + `

**Para créditos:**
` + "`valor - credito`" + `
Exemplo: ` + "`1500.00 - credito`" + `

**Para investimentos:**
` + "`valor - investimento - categoria`" + `
Exemplo: ` + "`500.00 - investimento - Renda Fixa`"

const unknownCommandMessage = `❓ Comando não reconhecido.

Use /start para ver os comandos disponíveis ou envie uma transação no formato:
` + "`valor - tipo de pagamento - categoria (descrição)`"

const (
	clearedMessage    = "✅ Tabela limpa com sucesso! Todos os dados foram removidos."
	clearErrorMessage = "❌ Erro ao limpar a tabela. Tente novamente."
	storeErrorMessage = "❌ Erro ao registrar a transação. Tente novamente."
	statsErrorMessage = "❌ Erro ao gerar estatísticas. Tente novamente mais tarde."
	noDataMessage     = "📈 Nenhum dado encontrado para gerar estatísticas. Adicione algumas transações primeiro!"
)
