package backup

import (
	"fmt"
	"strings"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/service/ledger"
	"github.com/safdamla/pressbook/pkg/format"
)

// Receipt renders a single transaction as the counter receipt handed to the
// customer. Cost lines are recomputed from the raw fields rather than read
// from the stored totals, so a receipt for an in-flight form is correct too.
func Receipt(t models.Transaction) string {
	oliveCost := ledger.OliveCost(t)
	tinCost := ledger.TinCost(t)
	plasticCost := ledger.PlasticCost(t)
	totalCost := oliveCost + tinCost + plasticCost
	remaining := totalCost - t.PaymentReceived - t.PaymentLoss

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString("İşlem Fişi / Makbuz\n")
	b.WriteString(separator)
	fmt.Fprintf(&b, "Müşteri: %s\n", t.CustomerName)
	fmt.Fprintf(&b, "Tarih: %s\n", format.Date(t.Date))
	fmt.Fprintf(&b, "Açıklama: %s\n", transactionLabel(t))
	b.WriteString(separator)
	fmt.Fprintf(&b, "Zeytin (kg): %s\n", format.Number(t.OliveKg, ""))
	fmt.Fprintf(&b, "Çıkan Yağ (L): %s\n", format.Number(t.OilLitre, ""))
	fmt.Fprintf(&b, "Kg Başına Ücret (₺): %s\n", format.Number(t.PricePerKg, ""))
	fmt.Fprintf(&b, "Yağ Oranı: %s\n", ratioLabel(t.OliveKg, t.OilLitre))
	fmt.Fprintf(&b, "Teneke (16/10/5): %s / %s / %s\n",
		format.Number(t.TinCounts.S16, ""), format.Number(t.TinCounts.S10, ""), format.Number(t.TinCounts.S5, ""))
	fmt.Fprintf(&b, "Bidon (10/5/2): %s / %s / %s\n",
		format.Number(t.PlasticCounts.S10, ""), format.Number(t.PlasticCounts.S5, ""), format.Number(t.PlasticCounts.S2, ""))
	b.WriteString(separator)
	fmt.Fprintf(&b, "Zeytin Sıkım Ücreti: %s\n", format.Lira(oliveCost))
	fmt.Fprintf(&b, "Teneke Fiyatı: %s\n", format.Lira(tinCost))
	fmt.Fprintf(&b, "Bidon Fiyatı: %s\n", format.Lira(plasticCost))
	fmt.Fprintf(&b, "Genel Toplam: %s\n", format.Lira(totalCost))
	fmt.Fprintf(&b, "Alınan Ödeme: %s\n", format.Lira(t.PaymentReceived))
	fmt.Fprintf(&b, "Kalan Bakiye: %s\n", format.Lira(remaining))
	b.WriteString(separator)
	return b.String()
}

// CustomerStatement renders a customer's full position: the aggregate header
// block followed by the transaction history table.
func CustomerStatement(c models.Customer, transactions []models.Transaction) string {
	var own []models.Transaction
	for _, t := range transactions {
		if t.CustomerID == c.ID {
			own = append(own, t)
		}
	}
	totals := ledger.ForCustomer(transactions, c.ID)
	sum := ledger.Sum(own)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(separator)
	fmt.Fprintf(&b, "Müşteri: %s\n", c.Name)
	fmt.Fprintf(&b, "Toplam İşlem: %d\n", totals.TransactionCount)
	fmt.Fprintf(&b, "İşlenen Zeytin: %s\n", format.Number(sum.OliveKg, " kg"))
	fmt.Fprintf(&b, "Üretilen Yağ: %s\n", format.Number(sum.OilLitre, " L"))
	fmt.Fprintf(&b, "Yağ Oranı: %s\n", ratioLabel(sum.OliveKg, sum.OilLitre))
	fmt.Fprintf(&b, "Toplam Ücret: %s\n", format.Lira(totals.Billed))
	fmt.Fprintf(&b, "Alınan Ödeme: %s\n", format.Lira(totals.Paid))
	fmt.Fprintf(&b, "Kalan Bakiye: %s\n", format.Lira(totals.RemainingBalance))
	fmt.Fprintf(&b, "Kullanılan Kaplar: Teneke: %s, Bidon: %s\n",
		format.Number(sum.TinCount, ""), format.Number(sum.PlasticCount, ""))
	b.WriteString(separator)
	b.WriteString("İşlem Geçmişi\n")
	for _, t := range own {
		remaining := t.TotalCost - t.PaymentReceived - t.PaymentLoss
		fmt.Fprintf(&b, "- Tarih: %s, Açıklama: %s, Ücret: %s, Alınan: %s, Bakiye: %s\n",
			format.Date(t.Date), transactionLabel(t),
			format.Lira(t.TotalCost), format.Lira(t.PaymentReceived), format.Lira(remaining))
	}
	b.WriteString(separator)
	return b.String()
}

func ratioLabel(oliveKg, oilLitre float64) string {
	if ratio, ok := ledger.OilRatio(oliveKg, oilLitre); ok {
		return format.Number(ratio, "")
	}
	return "-"
}
