package backup

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safdamla/pressbook/internal/domain/models"
)

func fixtureSnapshot() models.Snapshot {
	date := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	snap := models.Snapshot{
		Customers: []models.Customer{
			{ID: "c1", Name: "Borçlu Ali"},
			{ID: "c2", Name: "Temiz Ayşe"},
			{ID: "c3", Name: "İşlemsiz Veli"},
		},
		Transactions: []models.Transaction{
			{
				ID: "t1", CustomerID: "c1", CustomerName: "Borçlu Ali", Date: date,
				OliveKg: 1000, PricePerKg: 3, OilLitre: 200,
				TotalCost: 3000, PaymentReceived: 1000, RemainingBalance: 2000,
			},
			{
				ID: "t2", CustomerID: "c2", CustomerName: "Temiz Ayşe", Date: date,
				OliveKg: 500, PricePerKg: 3, OilLitre: 100,
				TotalCost: 1500, PaymentReceived: 1500,
				Description: "Erken hasat",
			},
		},
		WorkerExpenses:   []models.WorkerExpense{{Date: date, WorkerName: "Hasan", DaysWorked: 3, Amount: 1500}},
		FactoryOverhead:  []models.OverheadExpense{{Date: date, Description: "Elektrik", Amount: 300}},
		PomaceRevenues:   []models.PomaceRevenue{{Date: date, TruckCount: 1, LoadKg: 1000, PricePerKg: 0.9, TotalRevenue: 900}},
		TinPurchases:     []models.TinPurchase{{Date: date, S16: 10, TinPrice: 80, TotalCost: 800}},
		PlasticPurchases: []models.PlasticPurchase{{Date: date, S10: 20, PlasticPrice: 15, TotalCost: 300}},
		OilPurchases:     []models.OilPurchase{{Date: date, SupplierName: "Tedarikçi", TinCount: 10, TinPrice: 200, TotalCost: 2000}},
		OilSales:         []models.OilSale{{Date: date, CustomerName: "Alıcı", TinCount: 4, TinPrice: 250, TotalRevenue: 1000}},
	}
	snap.Normalize()
	return snap
}

func TestLedgerText(t *testing.T) {
	now := time.Date(2025, time.November, 13, 9, 30, 0, 0, time.UTC)
	text := LedgerText(fixtureSnapshot(), now)

	assert.True(t, strings.HasPrefix(text, "SAF DAMLA ZEYTİNYAĞI FABRİKASI - YEDEK DOSYASI\n"))
	assert.Contains(t, text, "Yedekleme Tarihi: 13.11.2025 09:30:00")

	for _, section := range []string{
		"--- FABRİKA GENEL ÖZETİ ---",
		"--- ZEYTİN ÇEKİM ÜCRETLERİ ---",
		"--- ZEYTİNYAĞI ALIM/SATIM ÖZETİ ---",
		"--- ZEYTİNYAĞI ALIMLARI (1 adet) ---",
		"--- ZEYTİNYAĞI SATIŞLARI (1 adet) ---",
		"--- İŞÇİ GİDERLERİ (1 adet) ---",
		"--- MUHTELİF GİDERLER (1 adet) ---",
		"--- TENEKE ALIMLARI (1 adet) ---",
		"--- BİDON ALIMLARI (1 adet) ---",
		"--- PİRİNA GELİRLERİ (1 adet) ---",
		"--- TENEKE/BİDON STOKLARI ---",
		"--- MÜŞTERİ KAYITLARI (Sadece Borçlu Müşteriler) ---",
	} {
		assert.Contains(t, text, section)
	}

	// Only the indebted customer appears in the main backup.
	assert.Contains(t, text, "*** Müşteri Adı: Borçlu Ali ***")
	assert.NotContains(t, text, "*** Müşteri Adı: Temiz Ayşe ***")
	assert.NotContains(t, text, "*** Müşteri Adı: İşlemsiz Veli ***")

	// Stock counts reflect purchases minus consumption.
	assert.Contains(t, text, "  16'lık: 10 adet")
	assert.Contains(t, text, "Kalan Net Teneke Stoğu: 6 adet")

	// Description falls back to the olive weight line.
	assert.Contains(t, text, "Açıklama: 1.000 kg zeytin")
}

func TestDebtFreeCustomersText(t *testing.T) {
	now := time.Date(2025, time.November, 13, 9, 30, 0, 0, time.UTC)
	text := DebtFreeCustomersText(fixtureSnapshot(), now)

	assert.True(t, strings.HasPrefix(text, "SAF DAMLA ZEYTİNYAĞI FABRİKASI - BORÇSUZ MÜŞTERİLER YEDEK DOSYASI\n"))
	assert.Contains(t, text, "--- MÜŞTERİ KAYITLARI (Sadece Borçsuz Müşteriler) ---")
	assert.Contains(t, text, "*** Müşteri Adı: Temiz Ayşe ***")
	assert.Contains(t, text, "Erken hasat (500 kg zeytin)")
	assert.NotContains(t, text, "*** Müşteri Adı: Borçlu Ali ***")

	// A customer with no transactions counts as debt free.
	assert.Contains(t, text, "*** Müşteri Adı: İşlemsiz Veli ***")
	assert.Contains(t, text, "(Bu müşteriye ait işlem bulunmamaktadır.)")
}

func TestReceipt(t *testing.T) {
	tx := models.Transaction{
		CustomerName: "Ali Veli",
		Date:         time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC),
		OliveKg:      200, PricePerKg: 3, OilLitre: 40,
		TinCounts: models.TinSizes{S16: 1}, TinPrices: models.TinSizes{S16: 80},
		PaymentReceived: 400,
	}

	text := Receipt(tx)

	require.Contains(t, text, "İşlem Fişi / Makbuz")
	assert.Contains(t, text, "Müşteri: Ali Veli")
	assert.Contains(t, text, "Tarih: 12.11.2025")
	assert.Contains(t, text, "Yağ Oranı: 5")
	assert.Contains(t, text, "Teneke (16/10/5): 1 / 0 / 0")
	assert.Contains(t, text, "Zeytin Sıkım Ücreti: 600 ₺")
	assert.Contains(t, text, "Teneke Fiyatı: 80 ₺")
	assert.Contains(t, text, "Genel Toplam: 680 ₺")
	assert.Contains(t, text, "Kalan Bakiye: 280 ₺")
}

func TestReceipt_UndefinedRatio(t *testing.T) {
	text := Receipt(models.Transaction{CustomerName: "X", OliveKg: 100, PricePerKg: 3})
	assert.Contains(t, text, "Yağ Oranı: -")
}

func TestCustomerStatement(t *testing.T) {
	snap := fixtureSnapshot()

	text := CustomerStatement(snap.Customers[0], snap.Transactions)

	assert.Contains(t, text, "Müşteri: Borçlu Ali")
	assert.Contains(t, text, "Toplam İşlem: 1")
	assert.Contains(t, text, "İşlenen Zeytin: 1.000 kg")
	assert.Contains(t, text, "Üretilen Yağ: 200 L")
	assert.Contains(t, text, "Yağ Oranı: 5")
	assert.Contains(t, text, "Kalan Bakiye: 2.000 ₺")
	// Other customers' rows never leak into the statement.
	assert.NotContains(t, text, "Temiz Ayşe")
}
