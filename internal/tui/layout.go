package tui

type pageLayout struct {
	windowWidth  int
	windowHeight int
	fieldWidth   int
	outputWidth  int
	outputHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		fieldWidth:   70,
		outputWidth:  76,
		outputHeight: 8,
	}
}

// Update sizes the form fields and the output area for a window. The output
// takes whatever height the hero, form, buttons and status bar leave over.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - outputHorizontalPadding
	if innerWidth < minOutputWidth {
		innerWidth = minOutputWidth
	}
	l.outputWidth = innerWidth
	l.fieldWidth = innerWidth - 6
	if l.fieldWidth < 20 {
		l.fieldWidth = 20
	}
	const chrome = 26
	l.outputHeight = height - chrome
	if l.outputHeight < 4 {
		l.outputHeight = 4
	}
}
