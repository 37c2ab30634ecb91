package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
)

func TestRenderOrderLabel(t *testing.T) {
	m := &label.Model{
		Kind:          label.KindOrder,
		Name:          "Wundhaken stumpf nach Langenbeck, Größe 2",
		Code:          "WH-200",
		QuantityText:  "10/25",
		BatchNumber:   "2024-0113",
		PartnerName:   "Klinik Nord GmbH",
		InvoiceNumber: "RG2024-0113",
		QRPayload:     "WH-200-RG2024-0113",
	}

	pdf, err := NewLabelRenderer().RenderLabel(m)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderProductLabel(t *testing.T) {
	m := &label.Model{
		Kind:            label.KindProduct,
		Name:            "Skalpellgriff Nr. 4",
		Code:            "SG-400",
		QuantityText:    "100",
		UDI:             "04012345",
		LotNumber:       "L42",
		ProductionMonth: "2024/03",
		QRPayload:       "(01)04012345(10)L42(11)2024/03",
		Icons: []label.IconPlacement{
			{Code: label.IconMedicalDevice, Offset: 0},
			{Code: label.IconCE, Offset: 6},
			{Code: label.IconDateStamp, Offset: 13},
		},
		AddressLines: []string{
			"CHW-Technik GmbH", "Kolligsbrunnen 1", "37115 Duderstadt",
			"Tel.: +49 (0)5527 99896-9", "Fax: +49 (0)5527 99896-7",
		},
	}

	pdf, err := NewLabelRenderer().RenderLabel(m)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderLabelNoDataPayload(t *testing.T) {
	m := &label.Model{
		Kind:      label.KindProduct,
		Name:      "Unbekannt",
		QRPayload: label.NoData,
		Icons:     []label.IconPlacement{{Code: label.IconDateStamp, Offset: 0}},
	}

	pdf, err := NewLabelRenderer().RenderLabel(m)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateOverview(t *testing.T) {
	res := &erpdata.Result{
		Kind: erpdata.KindSales,
		Sales: []entity.SaleOrder{
			{ID: 1, Number: "S00042", PartnerName: "Klinik Nord GmbH",
				Invoices: []entity.Invoice{{Number: "RG2024-0113"}}},
			{ID: 2, Number: "S00043", PartnerName: "Praxis Süd"},
		},
	}

	pdf, err := NewOverviewGenerator().Generate(res)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
