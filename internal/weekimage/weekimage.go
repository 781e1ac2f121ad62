// Package weekimage рисует недельное расписание в PNG для выгрузки
package weekimage

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/labclass/scheduler/internal/service"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 800
	headerHeight    = 70
	dayPaddingX     = 8
	slotHeight      = 58.0
	slotSpacing     = 6.0
	slotPaddingY    = 14.0
	lineHeight      = 15.0
	totalDaysInWeek = 7
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{80, 85, 90, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{226, 228, 231, 255}
	slotColor      = color.RGBA{133, 193, 85, 220}
	slotTextColor  = color.RGBA{20, 24, 28, 230}
	emptyDayColor  = color.RGBA{150, 155, 160, 255}
	dayBorderColor = color.NRGBA{150, 150, 150, 120}
)

// Render рисует сетку недели: колонка на день, карточка на слот.
// Шрифт basicfont, без внешних зависимостей от TTF-файлов.
func Render(week []service.DaySchedule) ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := float64(imageWidth) / totalDaysInWeek

	for i, day := range week {
		if i >= totalDaysInWeek {
			break
		}

		x := float64(i) * dayWidth

		// Фон колонки, чередуем цвет для читаемости
		if i%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, dayWidth, imageHeight-headerHeight)
		dc.Fill()

		dc.SetColor(dayBorderColor)
		dc.DrawLine(x, headerHeight, x, imageHeight)
		dc.Stroke()

		// Заголовок с датой
		dc.SetColor(headerColor)
		dc.DrawStringAnchored(day.Date, x+dayWidth/2, headerHeight/2, 0.5, 0.5)

		if len(day.Slots) == 0 {
			dc.SetColor(emptyDayColor)
			dc.DrawStringAnchored("No schedules", x+dayWidth/2, headerHeight+40, 0.5, 0.5)
			continue
		}

		y := float64(headerHeight) + slotSpacing
		for _, slot := range day.Slots {
			if y+slotHeight > imageHeight {
				// Места в колонке нет, показываем сколько слотов не влезло
				dc.SetColor(emptyDayColor)
				dc.DrawStringAnchored(fmt.Sprintf("+%d more", remaining(day, y)), x+dayWidth/2, imageHeight-12, 0.5, 0.5)
				break
			}

			dc.SetColor(slotColor)
			dc.DrawRoundedRectangle(x+dayPaddingX, y, dayWidth-2*dayPaddingX, slotHeight, 6)
			dc.Fill()

			dc.SetColor(slotTextColor)
			textX := x + dayPaddingX + 8
			dc.DrawString(slot.TimeSlot, textX, y+slotPaddingY)
			dc.DrawString(slot.Subject+" / "+slot.Batch, textX, y+slotPaddingY+lineHeight)
			dc.DrawString(slot.ProfessorName, textX, y+slotPaddingY+2*lineHeight)

			y += slotHeight + slotSpacing
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}

	return buf.Bytes(), nil
}

func remaining(day service.DaySchedule, y float64) int {
	fit := int((y - headerHeight - slotSpacing) / (slotHeight + slotSpacing))
	left := len(day.Slots) - fit
	if left < 0 {
		return 0
	}
	return left
}
