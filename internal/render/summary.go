// Package render builds the Markdown report texts sent back on the
// statistics command. Chart rasterization is not done here; the series in
// stats.Summary are the contract with any chart-capable consumer.
package render

import (
	"fmt"
	"sort"
	"strings"

	"finbot/internal/stats"
)

const noData = "Nenhum dado encontrado para gerar estatísticas."

// SummaryText renders the headline financial report.
func SummaryText(s stats.Summary) string {
	if s.Transactions == 0 {
		return noData
	}

	period := "N/A"
	if !s.FirstDate.IsZero() {
		period = fmt.Sprintf("%s a %s", s.FirstDate.Format("02/01/2006"), s.LastDate.Format("02/01/2006"))
	}

	var b strings.Builder
	b.WriteString("📊 **RESUMO FINANCEIRO PESSOAL**\n\n")
	fmt.Fprintf(&b, "💰 **Total de créditos**: R$ %.2f (%d transações)\n", s.TotalCredits, s.CreditCount)
	fmt.Fprintf(&b, "💸 **Total de débitos**: R$ %.2f (%d transações)\n", s.TotalDebits, s.DebitCount)
	fmt.Fprintf(&b, "📈 **Total investido**: R$ %.2f (%d transações)\n", s.TotalInvestments, s.InvestmentCount)
	fmt.Fprintf(&b, "💳 **Saldo líquido**: R$ %.2f\n", s.NetBalance)
	fmt.Fprintf(&b, "📊 **Total de transações**: %d\n", s.Transactions)
	fmt.Fprintf(&b, "📅 **Período**: %s\n\n", period)
	fmt.Fprintf(&b, "🏷️ **Categoria de gasto mais frequente**: %s\n", s.TopExpenseCategory)
	fmt.Fprintf(&b, "📊 **Categoria de investimento mais frequente**: %s\n", s.TopInvestmentCategory)

	if s.DegradedCells > 0 {
		fmt.Fprintf(&b, "\n⚠️ %d células inválidas foram tratadas como zero.\n", s.DegradedCells)
	}
	return b.String()
}

// BreakdownText renders the grouped series as text tables, one section per
// series. Absent series produce no section; when no series exists at all
// (a credits-only ledger, for instance) it returns the empty string so the
// caller sends no breakdown message.
func BreakdownText(s stats.Summary) string {
	var b strings.Builder
	writeAmounts(&b, "🏷️ **Gastos por categoria**", s.SpendingByCategory)
	writeCounts(&b, "💳 **Tipos de pagamento**", s.PaymentMethodCounts)
	writeAmounts(&b, "📈 **Investimentos por categoria**", s.InvestmentByCategory)
	writeAmounts(&b, "📅 **Total gasto por mês**", s.SpendingByMonth)
	return strings.TrimRight(b.String(), "\n")
}

func writeAmounts(b *strings.Builder, title string, series map[string]float64) {
	if len(series) == 0 {
		return
	}
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	// Largest first; ties keep a stable alphabetical order.
	sort.Slice(keys, func(i, j int) bool {
		if series[keys[i]] != series[keys[j]] {
			return series[keys[i]] > series[keys[j]]
		}
		return keys[i] < keys[j]
	})

	b.WriteString(title + "\n")
	for _, k := range keys {
		fmt.Fprintf(b, "• %s: R$ %.2f\n", k, series[k])
	}
	b.WriteString("\n")
}

func writeCounts(b *strings.Builder, title string, series map[string]int) {
	if len(series) == 0 {
		return
	}
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if series[keys[i]] != series[keys[j]] {
			return series[keys[i]] > series[keys[j]]
		}
		return keys[i] < keys[j]
	})

	b.WriteString(title + "\n")
	total := 0
	for _, n := range series {
		total += n
	}
	for _, k := range keys {
		fmt.Fprintf(b, "• %s: %d (%.1f%%)\n", k, series[k], 100*float64(series[k])/float64(total))
	}
	b.WriteString("\n")
}
