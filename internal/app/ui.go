package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/samas/samas"
)

const (
	windowTitle     = "हिंदी समास पहचान और व्याख्या"
	inputHeading    = "हिंदी पाठ दर्ज करें:"
	submitLabel     = "पाठ संसाधित करें"
	expandedHeading = "संशोधित पाठ:"
	listingHeading  = "पहचाने गए समास और उनके प्रकार:"
	elapsedHeading  = "प्रतिक्रिया समय:"
	emptyWarning    = "कृपया कुछ पाठ दर्ज करें।"
	secondsSuffix   = "सेकंड"

	statusReady      = "तैयार"
	statusProcessing = "संसाधित हो रहा है..."
)

type uiState struct {
	mu         sync.RWMutex
	svc        *samas.Service
	configPath string
	fileCfg    samas.Config
	logger     *log.Logger
	async      bool

	w           fyne.Window
	input       *widget.Entry
	warning     *widget.Label
	output      *fyne.Container
	expanded    *widget.Label
	listing     *widget.Label
	elapsed     *widget.Label
	status      *widget.Label
	statusBind  binding.String
	datasetInfo *widget.Label
	log         *widget.Entry

	submitBtn   *widget.Button
	exportBtn   *widget.Button
	loadBtn     *widget.Button
	settingsBtn *widget.Button

	results []samas.Result
}

func buildUI(a fyne.App, svc *samas.Service, logBind binding.String) *uiState {
	u := &uiState{svc: svc}
	u.w = a.NewWindow(windowTitle)

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set(statusReady)

	u.input = widget.NewMultiLineEntry()
	u.input.Wrapping = fyne.TextWrapWord
	u.input.SetMinRowsVisible(8)
	u.input.SetPlaceHolder("उदाहरण: राजपुत्र यहाँ है")

	u.warning = widget.NewLabelWithStyle(emptyWarning, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.warning.Importance = widget.WarningImportance
	u.warning.Hide()

	u.expanded = widget.NewLabel("")
	u.expanded.Wrapping = fyne.TextWrapWord
	u.listing = widget.NewLabel("")
	u.listing.Wrapping = fyne.TextWrapWord
	u.elapsed = widget.NewLabel("")
	u.output = container.NewVBox(
		heading(expandedHeading), u.expanded,
		widget.NewSeparator(),
		heading(listingHeading), u.listing,
		widget.NewSeparator(),
		heading(elapsedHeading), u.elapsed,
	)
	u.output.Hide()

	u.status = widget.NewLabelWithData(u.statusBind)
	u.datasetInfo = widget.NewLabel("")
	u.datasetInfo.Wrapping = fyne.TextWrapWord

	if logBind == nil {
		logBind = binding.NewString()
	}
	u.log = widget.NewEntryWithData(logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("लॉग")
	u.log.Disable()

	u.submitBtn = widget.NewButtonWithIcon(submitLabel, theme.ConfirmIcon(), func() { u.onSubmit() })
	u.submitBtn.Importance = widget.HighImportance
	u.exportBtn = widget.NewButtonWithIcon("CSV निर्यात", theme.DocumentSaveIcon(), func() { u.onExport() })
	u.exportBtn.Disable()
	u.loadBtn = widget.NewButtonWithIcon("फ़ाइल खोलें", theme.FolderOpenIcon(), func() { u.onLoadFile() })
	u.settingsBtn = widget.NewButtonWithIcon("सेटिंग्स", theme.SettingsIcon(), func() { u.openSettings() })

	controls := container.NewGridWithColumns(2, u.submitBtn, u.exportBtn, u.loadBtn, u.settingsBtn)
	left := container.NewVBox(
		heading(inputHeading),
		u.input,
		controls,
		u.warning,
		widget.NewSeparator(),
		heading("स्थिति"),
		u.status,
		heading("डेटासेट"),
		u.datasetInfo,
		widget.NewSeparator(),
		heading("लॉग"),
		container.NewStack(u.log),
	)
	right := container.NewVScroll(u.output)
	split := container.NewHSplit(left, right)
	split.Offset = 0.45

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(1100, 720))
	u.updateDatasetInfo()
	return u
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func (u *uiState) service() *samas.Service {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.svc
}

func (u *uiState) setService(svc *samas.Service) *samas.Service {
	u.mu.Lock()
	defer u.mu.Unlock()
	old := u.svc
	u.svc = svc
	return old
}

func (u *uiState) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func (u *uiState) setBusy(b bool) {
	for _, btn := range []*widget.Button{u.submitBtn, u.loadBtn, u.settingsBtn} {
		if b {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) updateDatasetInfo() {
	svc := u.service()
	var b strings.Builder
	b.WriteString(svc.Summary())
	counts := svc.Dataset().LabelCounts()
	for _, c := range svc.Mapping().Categories() {
		if n := counts[c.Code]; n > 0 {
			fmt.Fprintf(&b, "\n%s: %d", c.Name, n)
		}
	}
	u.datasetInfo.SetText(b.String())
}

func (u *uiState) showWarning() {
	u.output.Hide()
	u.warning.Show()
	u.setStatus(statusReady)
}

func (u *uiState) onSubmit() {
	text := u.input.Text
	if strings.TrimSpace(text) == "" {
		u.showWarning()
		return
	}
	u.warning.Hide()
	u.setBusy(true)
	u.setStatus(statusProcessing)
	if u.async {
		go u.process(text)
		return
	}
	u.process(text)
}

func (u *uiState) process(text string) {
	res, err := u.service().Process(text)
	fyne.Do(func() {
		u.setBusy(false)
		switch {
		case errors.Is(err, samas.ErrEmptyInput):
			u.showWarning()
		case err != nil:
			u.setStatus("त्रुटि")
			dialog.ShowError(err, u.w)
		default:
			u.showResult(res)
		}
	})
	if err == nil {
		u.logf("Processed text: %d compounds in %s s", len(res.Compounds), res.ElapsedSeconds())
	}
}

func (u *uiState) showResult(res samas.Result) {
	u.expanded.SetText(res.Expanded)
	u.listing.SetText(res.Listing())
	u.elapsed.SetText(fmt.Sprintf("%s %s", res.ElapsedSeconds(), secondsSuffix))
	u.output.Show()
	u.results = append(u.results, res)
	u.exportBtn.Enable()
	u.setStatus(fmt.Sprintf("पूर्ण: %d समास", len(res.Compounds)))
}

func (u *uiState) onExport() {
	if len(u.results) == 0 {
		dialog.ShowInformation("सूचना", "निर्यात करने के लिए कोई परिणाम नहीं है", u.w)
		return
	}
	results := append([]samas.Result(nil), u.results...)
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := u.exportResults(uc, results); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.logf("CSV exported: %s (%d rows)", uc.URI().Name(), len(results))
	}, u.w)
	fd.SetFileName("samas_result.csv")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fd.Show()
}

func (u *uiState) exportResults(w io.Writer, results []samas.Result) error {
	return samas.WriteResultsCSV(w, results)
}

func (u *uiState) onLoadFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		lines, err := samas.ReadInputTexts(rc)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.input.SetText(strings.Join(lines, "\n"))
		u.logf("Loaded %s (%d lines)", filepath.Base(rc.URI().Path()), len(lines))
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	fd.Show()
}

// settings holds the fields the settings dialog edits.
type settings struct {
	Dataset        string
	CategoriesPath string
	ExpandMode     samas.ExpandMode
}

func currentSettings(cfg samas.Config) settings {
	return settings{Dataset: cfg.Dataset, CategoriesPath: cfg.CategoriesPath, ExpandMode: cfg.ExpandMode}
}

// merge copies the fields that differ from cur into base. Fields left untouched in
// the dialog keep base's value, so environment overrides never reach config.json.
func (s settings) merge(base samas.Config, cur settings) samas.Config {
	out := base.Clone()
	if s.Dataset != cur.Dataset {
		out.Dataset = s.Dataset
	}
	if s.CategoriesPath != cur.CategoriesPath {
		out.CategoriesPath = s.CategoriesPath
	}
	if s.ExpandMode != cur.ExpandMode {
		out.ExpandMode = s.ExpandMode
	}
	return out
}

func (u *uiState) openSettings() {
	cur := currentSettings(u.service().Config())

	datasetEntry := widget.NewEntry()
	datasetEntry.SetText(cur.Dataset)
	categoriesEntry := widget.NewEntry()
	categoriesEntry.SetText(cur.CategoriesPath)
	categoriesEntry.SetPlaceHolder("categories.yaml")
	modeSel := widget.NewSelect([]string{string(samas.ExpandModeSpans), string(samas.ExpandModeReplaceAll)}, nil)
	modeSel.SetSelected(string(cur.ExpandMode))

	form := &widget.Form{Items: []*widget.FormItem{
		{Text: "डेटासेट", Widget: datasetEntry, HintText: "xlsx, csv, tsv, sqlite://, s3://"},
		{Text: "श्रेणी फ़ाइल", Widget: categoriesEntry},
		{Text: "विस्तार मोड", Widget: modeSel},
	}}
	dialog.NewCustomConfirm("सेटिंग्स", "ठीक", "रद्द करें", form, func(ok bool) {
		if !ok {
			return
		}
		u.applySettings(settings{
			Dataset:        strings.TrimSpace(datasetEntry.Text),
			CategoriesPath: strings.TrimSpace(categoriesEntry.Text),
			ExpandMode:     samas.ExpandMode(modeSel.Selected),
		})
	}, u.w).Show()
}

// applySettings saves the edited fields to the config file and reopens the service
// with them. The current service keeps serving if the reload fails.
func (u *uiState) applySettings(st settings) {
	running := u.service().Config()
	cur := currentSettings(running)
	cfg := st.merge(running, cur)

	path := samas.ConfigPath(u.configPath)
	saved := st.merge(u.fileCfg, cur)
	if err := samas.SaveConfig(path, saved); err != nil {
		u.logf("Saving config failed: %v", err)
	} else {
		u.fileCfg = saved
		u.logf("Saved settings to %s", path)
	}
	u.setBusy(true)
	u.setStatus("डेटासेट लोड हो रहा है...")
	reload := func() {
		svc, err := samas.Open(context.Background(), cfg, u.logger)
		fyne.Do(func() {
			u.setBusy(false)
			if err != nil {
				u.setStatus("त्रुटि")
				dialog.ShowError(err, u.w)
				return
			}
			if old := u.setService(svc); old != nil {
				_ = old.Close()
			}
			u.updateDatasetInfo()
			u.setStatus(statusReady)
		})
	}
	if u.async {
		go reload()
		return
	}
	reload()
}
