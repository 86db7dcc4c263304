package report

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const styles = `<style>
body { font-family: 'Kanit', sans-serif; padding: 50px; color: #334155; line-height: 1.8; }
.header { text-align: center; border-bottom: 4px solid #26A69A; padding-bottom: 30px; margin-bottom: 40px; }
.header h1 { margin: 0; font-weight: 900; font-size: 32px; color: #0F172A; }
.header p { font-weight: bold; letter-spacing: 2px; color: #64748B; }
.info-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; margin-bottom: 40px; font-size: 16px; }
.score-box { background: #F0FDFA; padding: 40px; border-radius: 24px; text-align: center; margin-bottom: 40px; border: 2px solid #CCFBF1; }
.score-box .pct { font-size: 64px; font-weight: 900; color: #0D9488; line-height: 1; }
.score-box .grade { font-size: 24px; font-weight: 900; color: #14B8A6; margin-top: 10px; }
.section { margin-bottom: 30px; }
.section-title { font-weight: 900; color: #26A69A; margin-bottom: 12px; border-left: 6px solid #26A69A; padding-left: 15px; }
.section-body { padding-left: 21px; }
table.breakdown { width: 100%; border-collapse: collapse; margin-bottom: 40px; }
table.breakdown td, table.breakdown th { border-bottom: 1px solid #E2E8F0; padding: 6px 8px; text-align: left; }
.photos img { max-width: 45%; margin: 0 2% 12px 0; border-radius: 12px; }
.footer { margin-top: 80px; text-align: right; font-weight: bold; }
@media print { body { padding: 0; } }
</style>`

// Title 文档标题
const Title = "สรุปผลการนิเทศการจัดการเรียนรู้"

// printer 顺序写入，记住第一个错误
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) component(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

// Page 完整的可打印文档
func Page(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<!DOCTYPE html><html lang="th"><head><meta charset="utf-8"><title>`)
		p.text("รายงานการนิเทศ - " + orMissing(doc.SubjectName))
		p.raw(`</title>`)
		p.raw(`<link href="https://fonts.googleapis.com/css2?family=Kanit:wght@400;700;900&display=swap" rel="stylesheet">`)
		p.raw(styles)
		p.raw(`</head><body>`)
		p.component(ctx, header())
		p.component(ctx, infoGrid(doc))
		p.component(ctx, scoreBox(doc))
		p.component(ctx, breakdown(doc.Sections))
		p.component(ctx, textSection("จุดเด่นที่พบเห็น", doc.Strengths))
		p.component(ctx, textSection("สิ่งที่ควรพัฒนา/ปรับปรุง", doc.Improvements))
		p.component(ctx, textSection("ข้อเสนอแนะเพิ่มเติม", doc.Suggestions))
		p.component(ctx, photos(doc.Photos))
		p.component(ctx, signature(doc.SupervisorName))
		p.raw(`</body></html>`)
		return p.err
	})
}

func header() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="header"><h1>`)
		p.text(Title)
		p.raw(`</h1><p>DIGITAL SUPERVISION PLATFORM</p></div>`)
		return p.err
	})
}

func infoGrid(doc Document) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		row := func(label, value string) {
			p.raw(`<div><strong>`)
			p.text(label)
			p.raw(`</strong> `)
			p.text(value)
			p.raw(`</div>`)
		}

		subject := orMissing(doc.SubjectCode) + " " + orMissing(doc.SubjectName)
		p.raw(`<div class="info-grid">`)
		row("ชื่อผู้รับการนิเทศ:", orMissing(doc.TeacherName))
		row("ชื่อผู้นิเทศ:", orMissing(doc.SupervisorName))
		row("รหัสและชื่อวิชา:", subject)
		row("ห้องเรียน:", orMissing(doc.ClassName))
		row("ปีการศึกษา/เทอม:", orMissing(doc.Year)+" / "+orMissing(doc.Semester))
		row("วันที่นิเทศ:", ThaiDate(doc.Date))
		p.raw(`</div>`)
		return p.err
	})
}

func scoreBox(doc Document) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="score-box"><div>ระดับคะแนนประเมิน</div><div class="pct">`)
		p.text(fmt.Sprintf("%d%%", doc.Percentage))
		p.raw(`</div><div class="grade">`)
		p.text(string(doc.Grade))
		p.raw(`</div></div>`)
		return p.err
	})
}

func breakdown(sections []SectionScore) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(sections) == 0 {
			return nil
		}
		p := &printer{w: w}
		p.raw(`<table class="breakdown"><thead><tr><th>หัวข้อการประเมิน</th><th>คะแนน</th><th>ระดับ</th></tr></thead><tbody>`)
		for _, sec := range sections {
			p.raw(`<tr><th colspan="2">`)
			p.text(sec.Title)
			p.raw(`</th><th>`)
			p.text(fmt.Sprintf("%d", sec.Subtotal()))
			p.raw(`</th></tr>`)
			for _, it := range sec.Items {
				p.raw(`<tr><td>`)
				p.text(it.Label)
				p.raw(`</td><td>`)
				p.text(fmt.Sprintf("%d", it.Score))
				p.raw(`</td><td>`)
				p.text(orMissing(it.LevelLabel))
				p.raw(`</td></tr>`)
			}
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
}

func textSection(title, body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="section"><div class="section-title">`)
		p.text(title)
		p.raw(`</div><div class="section-body">`)
		p.text(orPlaceholder(body))
		p.raw(`</div></div>`)
		return p.err
	})
}

func photos(srcs []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		shown := 0
		for _, src := range srcs {
			if !safeImageSrc(src) {
				continue
			}
			if shown == 0 {
				p.raw(`<div class="section photos"><div class="section-title">ภาพประกอบการนิเทศ</div>`)
			}
			p.raw(`<img src="`)
			p.text(src)
			p.raw(`" alt="">`)
			shown++
		}
		if shown > 0 {
			p.raw(`</div>`)
		}
		return p.err
	})
}

func signature(supervisorName string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="footer"><p>ลงชื่อ....................................................................ผู้นิเทศ</p><p style="margin-right: 40px;">(`)
		p.text(orMissing(supervisorName))
		p.raw(`)</p></div>`)
		return p.err
	})
}

// Render 渲染为字节
func Render(ctx context.Context, doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Page(doc).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
