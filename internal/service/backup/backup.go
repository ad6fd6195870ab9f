// Package backup renders the ledger as the plain-text documents the factory
// office keeps offline: the full backup file, the debt-free customer list,
// transaction receipts and customer statements. Output is Turkish because
// that is what the paperwork readers expect.
package backup

import (
	"fmt"
	"strings"
	"time"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/service/costing"
	"github.com/safdamla/pressbook/internal/service/ledger"
	"github.com/safdamla/pressbook/internal/service/summary"
	"github.com/safdamla/pressbook/pkg/format"
)

const (
	header    = "SAF DAMLA ZEYTİNYAĞI FABRİKASI"
	separator = "==================================================\n"
)

// LedgerText renders the complete backup document: the consolidated factory
// summary, the revenue breakdown, the oil trading section, every expense and
// revenue collection, container stock counts, and finally the transaction
// history of every customer still carrying debt.
func LedgerText(snap models.Snapshot, now time.Time) string {
	snap.Normalize()

	var b strings.Builder
	fmt.Fprintf(&b, "%s - YEDEK DOSYASI\n", header)
	fmt.Fprintf(&b, "Yedekleme Tarihi: %s\n", now.Format("02.01.2006 15:04:05"))
	b.WriteString(separator)
	b.WriteString("\n")

	writeFactorySummary(&b, snap)
	writeRevenueBreakdown(&b, snap)
	writeOilTrading(&b, snap)
	writeCollections(&b, snap)
	writeStockCounts(&b, snap)
	writeCustomerHistories(&b, snap, true)
	return b.String()
}

// DebtFreeCustomersText renders the companion document listing only the
// customers whose balance is fully settled.
func DebtFreeCustomersText(snap models.Snapshot, now time.Time) string {
	snap.Normalize()

	var b strings.Builder
	fmt.Fprintf(&b, "%s - BORÇSUZ MÜŞTERİLER YEDEK DOSYASI\n", header)
	fmt.Fprintf(&b, "Yedekleme Tarihi: %s\n", now.Format("02.01.2006 15:04:05"))
	b.WriteString(separator)
	b.WriteString("\n")
	writeCustomerHistories(&b, snap, false)
	return b.String()
}

func writeFactorySummary(b *strings.Builder, snap models.Snapshot) {
	s := summary.Consolidated(snap)
	b.WriteString(separator)
	b.WriteString("--- FABRİKA GENEL ÖZETİ ---\n")
	fmt.Fprintf(b, "Toplam Gelir: %s\n", format.Lira(s.TotalIncome))
	fmt.Fprintf(b, "Toplam Gider: %s\n", format.Lira(s.TotalExpense))
	fmt.Fprintf(b, "Net Kâr/Zarar: %s\n", format.Lira(s.NetBalance))
	fmt.Fprintf(b, "Kalan Teneke Stok Değeri: %s\n", format.Lira(s.RemainingTinStockValue))
	fmt.Fprintf(b, "Kalan Bidon Stok Değeri: %s\n", format.Lira(s.RemainingJugStockValue))
	b.WriteString("\n")
}

func writeRevenueBreakdown(b *strings.Builder, snap models.Snapshot) {
	totals := ledger.Sum(snap.Transactions)
	revenue := ledger.Revenue(snap.Transactions)

	b.WriteString(separator)
	b.WriteString("--- ZEYTİN ÇEKİM ÜCRETLERİ ---\n")
	fmt.Fprintf(b, "Zeytin Sıkımı Hasılatı: %s\n", format.Lira(revenue.Olive))
	fmt.Fprintf(b, "Teneke Satışı Hasılatı: %s\n", format.Lira(revenue.Tin))
	fmt.Fprintf(b, "Bidon Satışı Hasılatı: %s\n", format.Lira(revenue.Plastic))
	fmt.Fprintf(b, "Toplam Hasılat: %s\n", format.Lira(revenue.Total-totals.PaymentLoss))
	fmt.Fprintf(b, "Toplam Alınan Ödeme: %s\n", format.Lira(totals.PaymentReceived))
	fmt.Fprintf(b, "Bekleyen Ödemeler: %s\n", format.Lira(totals.Pending))
	fmt.Fprintf(b, "Ödeme Firesi: %s\n", format.Lira(totals.PaymentLoss))
	b.WriteString("\n")
}

func writeOilTrading(b *strings.Builder, snap models.Snapshot) {
	s := summary.Oil(snap.OilPurchases, snap.OilSales)

	b.WriteString(separator)
	b.WriteString("--- ZEYTİNYAĞI ALIM/SATIM ÖZETİ ---\n")
	fmt.Fprintf(b, "Toplam Alım Maliyeti: %s\n", format.Lira(s.PurchaseCost))
	fmt.Fprintf(b, "Toplam Satış Geliri: %s\n", format.Lira(s.SaleRevenue))
	fmt.Fprintf(b, "Kalan Net Teneke Stoğu: %s\n", format.Number(s.NetStock, " adet"))
	fmt.Fprintf(b, "Net Kâr/Zarar: %s\n", format.Lira(s.TradingProfit))
	b.WriteString("\n")

	b.WriteString(separator)
	fmt.Fprintf(b, "--- ZEYTİNYAĞI ALIMLARI (%d adet) ---\n", len(snap.OilPurchases))
	for _, p := range snap.OilPurchases {
		fmt.Fprintf(b, "Tarih: %s, Firma: %s, Teneke Sayısı: %s, Teneke Fiyatı: %s, Toplam Maliyet: %s\n",
			format.Date(p.Date), p.SupplierName, format.Number(p.TinCount, ""),
			format.Lira(p.TinPrice), format.Lira(p.TotalCost))
	}
	b.WriteString("\n")

	b.WriteString(separator)
	fmt.Fprintf(b, "--- ZEYTİNYAĞI SATIŞLARI (%d adet) ---\n", len(snap.OilSales))
	for _, s := range snap.OilSales {
		fmt.Fprintf(b, "Tarih: %s, Müşteri: %s, Teneke Sayısı: %s, Teneke Fiyatı: %s, Toplam Gelir: %s\n",
			format.Date(s.Date), s.CustomerName, format.Number(s.TinCount, ""),
			format.Lira(s.TinPrice), format.Lira(s.TotalRevenue))
	}
	b.WriteString("\n")
}

func writeCollections(b *strings.Builder, snap models.Snapshot) {
	b.WriteString(separator)
	fmt.Fprintf(b, "--- İŞÇİ GİDERLERİ (%d adet) ---\n", len(snap.WorkerExpenses))
	for _, e := range snap.WorkerExpenses {
		fmt.Fprintf(b, "Tarih: %s, İsim: %s, Çalıştığı Gün: %s, Tutar: %s, Açıklama: %s\n",
			format.Date(e.Date), e.WorkerName, format.Number(e.DaysWorked, ""),
			format.Lira(e.Amount), e.Description)
	}
	b.WriteString("\n")

	b.WriteString(separator)
	fmt.Fprintf(b, "--- MUHTELİF GİDERLER (%d adet) ---\n", len(snap.FactoryOverhead))
	for _, e := range snap.FactoryOverhead {
		fmt.Fprintf(b, "Tarih: %s, Açıklama: %s, Tutar: %s\n",
			format.Date(e.Date), e.Description, format.Lira(e.Amount))
	}
	b.WriteString("\n")

	b.WriteString(separator)
	fmt.Fprintf(b, "--- TENEKE ALIMLARI (%d adet) ---\n", len(snap.TinPurchases))
	for _, p := range snap.TinPurchases {
		fmt.Fprintf(b, "Tarih: %s, 16'lık: %s, 10'luk: %s, 5'lik: %s, Birim Fiyat: %s, Toplam Maliyet: %s, Açıklama: %s\n",
			format.Date(p.Date), format.Number(p.S16, ""), format.Number(p.S10, ""), format.Number(p.S5, ""),
			format.Lira(p.TinPrice), format.Lira(p.TotalCost), p.Description)
	}
	b.WriteString("\n")

	b.WriteString(separator)
	fmt.Fprintf(b, "--- BİDON ALIMLARI (%d adet) ---\n", len(snap.PlasticPurchases))
	for _, p := range snap.PlasticPurchases {
		fmt.Fprintf(b, "Tarih: %s, 10'luk: %s, 5'lik: %s, 2'lik: %s, Birim Fiyat: %s, Toplam Maliyet: %s, Açıklama: %s\n",
			format.Date(p.Date), format.Number(p.S10, ""), format.Number(p.S5, ""), format.Number(p.S2, ""),
			format.Lira(p.PlasticPrice), format.Lira(p.TotalCost), p.Description)
	}
	b.WriteString("\n")

	b.WriteString(separator)
	fmt.Fprintf(b, "--- PİRİNA GELİRLERİ (%d adet) ---\n", len(snap.PomaceRevenues))
	for _, r := range snap.PomaceRevenues {
		fmt.Fprintf(b, "Tarih: %s, Açıklama: %s, Tır Sayısı: %s, Yük: %s kg, Kg Fiyatı: %s ₺, Toplam Gelir: %s\n",
			format.Date(r.Date), r.Description, format.Number(r.TruckCount, ""),
			format.Number(r.LoadKg, ""), format.Number(r.PricePerKg, ""), format.Lira(r.TotalRevenue))
	}
	b.WriteString("\n")
}

func writeStockCounts(b *strings.Builder, snap models.Snapshot) {
	tin := costing.TinStock(snap.TinPurchases, snap.Transactions)
	jug := costing.PlasticStock(snap.PlasticPurchases, snap.Transactions)

	b.WriteString(separator)
	b.WriteString("--- TENEKE/BİDON STOKLARI ---\n")
	b.WriteString("Kalan Teneke Stokları:\n")
	fmt.Fprintf(b, "  16'lık: %s adet\n", format.Number(tin[costing.S16].Remaining, ""))
	fmt.Fprintf(b, "  10'luk: %s adet\n", format.Number(tin[costing.S10].Remaining, ""))
	fmt.Fprintf(b, "  5'lik: %s adet\n", format.Number(tin[costing.S5].Remaining, ""))
	b.WriteString("Kalan Bidon Stokları:\n")
	fmt.Fprintf(b, "  10'luk: %s adet\n", format.Number(jug[costing.S10].Remaining, ""))
	fmt.Fprintf(b, "  5'lik: %s adet\n", format.Number(jug[costing.S5].Remaining, ""))
	fmt.Fprintf(b, "  2'lik: %s adet\n", format.Number(jug[costing.S2].Remaining, ""))
	b.WriteString("\n")
}

// writeCustomerHistories lists customers split by debt position: debtors in
// the main backup, settled customers in the companion file.
func writeCustomerHistories(b *strings.Builder, snap models.Snapshot, debtors bool) {
	b.WriteString(separator)
	if debtors {
		b.WriteString("--- MÜŞTERİ KAYITLARI (Sadece Borçlu Müşteriler) ---\n")
	} else {
		b.WriteString("--- MÜŞTERİ KAYITLARI (Sadece Borçsuz Müşteriler) ---\n")
	}

	for _, c := range snap.Customers {
		totals := ledger.ForCustomer(snap.Transactions, c.ID)
		if debtors != (totals.RemainingBalance > 0) {
			continue
		}
		fmt.Fprintf(b, "\n*** Müşteri Adı: %s ***\n", c.Name)
		b.WriteString("  > İşlem Geçmişi:\n")
		if totals.TransactionCount == 0 {
			b.WriteString("    (Bu müşteriye ait işlem bulunmamaktadır.)\n")
			continue
		}
		for _, t := range snap.Transactions {
			if t.CustomerID != c.ID {
				continue
			}
			remaining := t.TotalCost - t.PaymentReceived - t.PaymentLoss
			fmt.Fprintf(b, "    - Tarih: %s, Açıklama: %s, Tutar: %s, Alınan: %s, Kalan: %s\n",
				format.Date(t.Date), transactionLabel(t),
				format.Lira(t.TotalCost), format.Lira(t.PaymentReceived), format.Lira(remaining))
		}
	}
	b.WriteString("\n")
}

// transactionLabel is the single-line description used on statements and
// backups: the free-text description when present, always with the olive
// weight appended.
func transactionLabel(t models.Transaction) string {
	weight := format.Number(t.OliveKg, " kg zeytin")
	if t.Description != "" {
		return fmt.Sprintf("%s (%s)", t.Description, weight)
	}
	return weight
}
