package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/workflow"
)

// Generator produces report files; an interface so handlers can be tested
// without touching the filesystem.
type Generator interface {
	GenerateAgenda(data AgendaData) (string, error)
}

type DocumentGenerator struct {
	RootDir  string // storage root, e.g. "./files"
	FontPath string // optional TTF path; built-in Helvetica when empty
	fontName string
}

type AgendaData struct {
	UserEmail string
	Date      time.Time
	Tasks     []models.Task
	Events    []models.CalendarEvent
	Schedule  []workflow.ScheduledTask
	Filename  string // bare filename; generated from the date when empty
}

func NewDocumentGenerator(rootDir, fontPath string) *DocumentGenerator {
	return &DocumentGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "Helvetica",
	}
}

func (g *DocumentGenerator) GenerateAgenda(data AgendaData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("agenda_%s.pdf", data.Date.Format("2006-01-02"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Daily Agenda %s", data.Date.Format("2006-01-02")), false)
	pdf.SetAuthor("ARIA", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.setupFont(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "DAILY AGENDA", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s  %s", data.UserEmail, data.Date.Format("Monday, 02 Jan 2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Events")
	if len(data.Events) == 0 {
		pdf.MultiCell(0, 6, "No events scheduled.", "", "L", false)
	}
	for _, event := range data.Events {
		span := fmt.Sprintf("%s - %s", event.StartTime.Format("15:04"), event.EndTime.Format("15:04"))
		g.kvLine(pdf, span, event.Title)
		if event.Location != "" {
			pdf.SetFont(g.fontName, "", 10)
			pdf.CellFormat(45, 5, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, event.Location, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Open Tasks")
	if len(data.Tasks) == 0 {
		pdf.MultiCell(0, 6, "No open tasks.", "", "L", false)
	}
	for _, task := range data.Tasks {
		label := string(task.Priority)
		if task.Deadline != nil {
			label += ", due " + task.Deadline.Format("02 Jan 15:04")
		}
		g.kvLine(pdf, label, task.Title)
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Suggested Schedule")
	if len(data.Schedule) == 0 {
		pdf.MultiCell(0, 6, "Nothing to schedule.", "", "L", false)
	}
	for _, slot := range data.Schedule {
		span := fmt.Sprintf("%s - %s", slot.SuggestedStart.Format("15:04"), slot.SuggestedEnd.Format("15:04"))
		g.kvLine(pdf, span, slot.Title)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Base(absPath)), nil
}

// ===== helpers =====

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *DocumentGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // no path traversal
	return filepath.Join(g.RootDir, filename), nil
}

func (g *DocumentGenerator) setupFont(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		return
	}
	pdf.AddUTF8Font("Custom", "", g.FontPath)
	pdf.AddUTF8Font("Custom", "B", g.FontPath)
	g.fontName = "Custom"
}
