package windows

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// FileBrowserDialog is an in-app directory browser filtered to a set of
// file extensions. Selecting a file hands its path to the callback.
type FileBrowserDialog struct {
	dialog      dialog.Dialog
	window      fyne.Window
	title       string
	extensions  []string
	callback    func(string, error)
	fileList    *widget.List
	files       []string
	homeDir     string
	currentPath string
	pathLabel   *widget.Label
}

// NewFileBrowserDialog creates a browser rooted at the user's home
// directory showing only directories and files matching extensions.
func NewFileBrowserDialog(w fyne.Window, title string, extensions []string, callback func(string, error)) *FileBrowserDialog {
	fb := &FileBrowserDialog{
		window:     w,
		title:      title,
		extensions: extensions,
		callback:   callback,
		files:      make([]string, 0),
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	fb.homeDir = homeDir
	fb.currentPath = homeDir

	return fb
}

// NewProfileDialog creates a browser for Delta Sharing profile files.
// The callback receives the profile file content rather than its path.
func NewProfileDialog(w fyne.Window, callback func(string, error)) *FileBrowserDialog {
	return NewFileBrowserDialog(w, "Select Delta Sharing Profile",
		[]string{".share", ".json", ".txt"},
		func(path string, err error) {
			if err != nil {
				callback("", err)
				return
			}
			content, readErr := os.ReadFile(path)
			if readErr != nil {
				callback("", readErr)
				return
			}
			callback(string(content), nil)
		})
}

// NewDataFileDialog creates a browser for loadable data files.
func NewDataFileDialog(w fyne.Window, callback func(string, error)) *FileBrowserDialog {
	return NewFileBrowserDialog(w, "Open Data File",
		[]string{".csv", ".tsv", ".parquet", ".json", ".share"}, callback)
}

func (fb *FileBrowserDialog) Show() {
	fb.pathLabel = widget.NewLabel(fb.currentPath)
	fb.pathLabel.Wrapping = fyne.TextTruncate
	fb.pathLabel.TextStyle = fyne.TextStyle{Bold: true}

	fb.fileList = widget.NewList(
		func() int {
			return len(fb.files)
		},
		func() fyne.CanvasObject {
			icon := widget.NewIcon(theme.DocumentIcon())
			label := widget.NewLabel("template")
			return container.NewHBox(icon, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			cont := obj.(*fyne.Container)
			icon := cont.Objects[0].(*widget.Icon)
			label := cont.Objects[1].(*widget.Label)

			fileName := fb.files[id]
			label.SetText(fileName)

			fullPath := filepath.Join(fb.currentPath, fileName)
			fileInfo, err := os.Stat(fullPath)
			if err == nil && fileInfo.IsDir() {
				icon.SetResource(theme.FolderIcon())
			} else if fb.matchesFilter(fileName) {
				icon.SetResource(theme.DocumentIcon())
			} else {
				icon.SetResource(theme.FileIcon())
			}
		},
	)

	fb.fileList.OnSelected = func(id widget.ListItemID) {
		fileName := fb.files[id]
		fullPath := filepath.Join(fb.currentPath, fileName)

		fileInfo, err := os.Stat(fullPath)
		if err != nil {
			return
		}

		if fileInfo.IsDir() {
			fb.currentPath = fullPath
			fb.loadDirectory()
			fb.fileList.UnselectAll()
		} else {
			fb.callback(fullPath, nil)
			fb.dialog.Hide()
		}
	}

	homeButton := widget.NewButtonWithIcon("Home", theme.HomeIcon(), func() {
		fb.currentPath = fb.homeDir
		fb.loadDirectory()
	})

	upButton := widget.NewButtonWithIcon("Up", theme.NavigateBackIcon(), func() {
		parent := filepath.Dir(fb.currentPath)
		if parent != fb.currentPath {
			fb.currentPath = parent
			fb.loadDirectory()
		}
	})

	refreshButton := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		fb.loadDirectory()
	})

	filterInfo := widget.NewLabel("Showing: " + strings.Join(fb.extensions, ", ") + " files, and directories")
	filterInfo.TextStyle = fyne.TextStyle{Italic: true}

	navToolbar := container.NewBorder(
		nil, nil,
		container.NewHBox(homeButton, upButton, refreshButton),
		nil,
		fb.pathLabel,
	)

	instructions := widget.NewRichTextFromMarkdown("**Click a folder to navigate, or click a file to select it.**")
	instructions.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(
		container.NewVBox(
			instructions,
			widget.NewSeparator(),
			navToolbar,
			widget.NewSeparator(),
			filterInfo,
		),
		nil, nil, nil,
		fb.fileList,
	)

	fb.dialog = dialog.NewCustom(fb.title, "Close", content, fb.window)
	fb.dialog.Resize(fyne.NewSize(800, 600))

	fb.loadDirectory()

	fb.dialog.Show()
}

func (fb *FileBrowserDialog) matchesFilter(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range fb.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (fb *FileBrowserDialog) loadDirectory() {
	entries, err := os.ReadDir(fb.currentPath)
	if err != nil {
		dialog.ShowError(err, fb.window)
		return
	}

	fb.files = make([]string, 0)

	// Directories first, then matching files
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			fb.files = append(fb.files, entry.Name())
		}
	}

	var matched []string
	for _, entry := range entries {
		if !entry.IsDir() && fb.matchesFilter(entry.Name()) {
			matched = append(matched, entry.Name())
		}
	}
	sort.Strings(matched)
	fb.files = append(fb.files, matched...)

	fb.pathLabel.SetText(fb.currentPath)
	fb.fileList.Refresh()
}
