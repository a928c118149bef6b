// Package pdf gera a versão impressa do relatório de retiradas por período.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período + usuário                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Produto | Retiradas | Retirado kg | Vendido kg |   │
//	│          Em estoque kg                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS GERAIS                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/itamind/descongela-api/internal/application/dto"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 21, Green: 101, Blue: 192}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// RelatorioPDFGenerator gera o PDF do relatório por período usando Maroto v2.
type RelatorioPDFGenerator struct{}

// NewRelatorioPDFGenerator constrói o gerador.
func NewRelatorioPDFGenerator() *RelatorioPDFGenerator { return &RelatorioPDFGenerator{} }

// GerarRelatorioPeriodo gera o PDF e devolve seus bytes.
func (g *RelatorioPDFGenerator) GerarRelatorioPeriodo(rel *dto.RelatorioPeriodoResponse, usuario string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Retiradas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rel, usuario))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(rel.Detalhes) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rel))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título (esq) e período + usuário (dir).
func headerRow(rel *dto.RelatorioPeriodoResponse, usuario string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE RETIRADAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ciclo de descongelamento e vendas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Período: %s a %s", rel.DataInicio, rel.DataFim), props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Usuário: "+usuario, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Emitido: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de produtos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 2, align.Left),
		h("Retiradas", 2, align.Center),
		h("Retirado (kg)", 3, align.Right),
		h("Vendido (kg)", 3, align.Right),
		h("Em estoque (kg)", 2, align.Right),
	)
}

// tableDetailRows: uma linha por produto agregado.
func tableDetailRows(detalhes []dto.ResumoProdutoResponse) []core.Row {
	result := make([]core.Row, 0, len(detalhes))
	for _, d := range detalhes {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", d.ProdutoID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", d.TotalRetiradas),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				d.QuantidadeRetirada.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				d.QuantidadeVendida.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				d.QuantidadeEstoque.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloco de totais gerais alinhado à direita.
func totalsRow(rel *dto.RelatorioPeriodoResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(6).Add(
			label(fmt.Sprintf("Total de retiradas: %d", rel.TotalGeralRetiradas)),
			text.New(
				fmt.Sprintf("Retirado: %s kg   |   Vendido: %s kg",
					rel.QuantidadeGeralRetirada.StringFixed(2),
					rel.QuantidadeGeralVendida.StringFixed(2),
				),
				props.Text{Size: 9, Align: align.Right, Top: 6, Right: 1},
			),
		),
	)
}
