package windows

import (
	"fmt"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	dtwidget "gridbrowser/widget"
)

// MainWindow is the application shell: toolbar, navigation sidebar,
// browser tabs and status bar.
type MainWindow struct {
	a          fyne.App
	w          fyne.Window
	profile    string
	apiTimeout int

	docTabs   *container.DocTabs
	browser   *DataBrowser
	navTree   *NavigationTree
	tree      *widget.Tree
	left      fyne.CanvasObject
	statusBar *widget.Label

	selectedTable *delta_sharing.Table
}

func CreateMainWindow() *MainWindow {
	var v MainWindow
	v.NewMainWindow()
	return &v
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		fyne.Do(func() {
			t.statusBar.SetText(message)
		})
	}
}

func (t *MainWindow) NewMainWindow() {
	t.a = app.NewWithID("gridbrowser")
	t.a.Settings().SetTheme(&CustomTheme{})
	t.apiTimeout = loadAPITimeout(t.a.Preferences())

	t.w = t.a.NewWindow("Grid Browser")
	t.w.Resize(fyne.NewSize(1100, 700))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}

	t.docTabs = container.NewDocTabs()
	t.docTabs.CloseIntercept = func(ti *container.TabItem) {
		t.docTabs.Remove(ti)
	}
	t.browser = NewDataBrowser(t.w, t.docTabs, t.SetStatus)

	t.navTree = NewNavigationTree(t)
	t.tree = widget.NewTree(
		t.navTree.GetChildren,
		t.navTree.IsBranch,
		func(branch bool) fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.DocumentIcon()), widget.NewLabel("template"))
		},
		t.navTree.UpdateNodeDisplay,
	)
	t.tree.OnSelected = func(nodeID widget.TreeNodeID) {
		node := t.navTree.GetNode(nodeID)
		if node == nil || node.NodeType != NodeTypeTable {
			t.selectedTable = nil
			return
		}
		table := node.Table
		t.selectedTable = &table
		t.SetStatus(fmt.Sprintf("Loading table: %s.%s.%s", table.Share, table.Schema, table.Name))
		t.loadSelectedTable(nil)
	}

	t.left = widget.NewCard("", "Shares", t.tree)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), func() {
			if !t.left.Visible() {
				t.left.Show()
			} else {
				t.left.Hide()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			t.OpenDataFile()
		}),
		widget.NewToolbarAction(theme.FileIcon(), func() {
			t.OpenProfile()
		}),
		widget.NewToolbarAction(theme.SearchIcon(), func() {
			t.loadWithOptions()
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.ComputerIcon(), func() {
			ShowScriptWindow(t.a, t.browser.CurrentModel)
		}),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			t.showSettings()
		}),
	)

	bottom := container.NewHBox(t.statusBar)
	content := container.NewBorder(toolbar, bottom, t.left, nil, widget.NewCard("", "", t.docTabs))
	t.w.SetContent(dtwidget.WrapWithTooltips(content, t.w.Canvas()))
	t.w.ShowAndRun()
}

// showSettings edits application settings backed by Fyne preferences.
func (t *MainWindow) showSettings() {
	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.Itoa(t.apiTimeout))

	form := []*widget.FormItem{
		widget.NewFormItem("API timeout (seconds)", timeoutEntry),
	}
	dialog.ShowForm("Settings", "Save", "Cancel", form, func(confirmed bool) {
		if !confirmed {
			return
		}
		timeout, err := strconv.Atoi(timeoutEntry.Text)
		if err != nil || timeout <= 0 {
			dialog.ShowError(fmt.Errorf("invalid timeout: must be a positive number"), t.w)
			return
		}
		t.apiTimeout = timeout
		t.a.Preferences().SetInt(prefAPITimeout, timeout)
	}, t.w)
}

// OpenDataFile shows the data file browser and loads the selection
func (t *MainWindow) OpenDataFile() {
	fd := NewDataFileDialog(t.w, func(path string, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if path == "" {
			return
		}
		if DetectFileType(path, "") == FileTypeSharingProfile {
			t.loadProfileFromFile(path)
			return
		}
		t.handleDataFileLoad(path)
	})
	fd.Show()
}

// OpenProfile shows the profile browser and connects to the sharing server
func (t *MainWindow) OpenProfile() {
	pd := NewProfileDialog(t.w, func(content string, err error) {
		if err != nil {
			t.SetStatus("Error opening profile")
			dialog.ShowError(err, t.w)
			return
		}
		if content == "" {
			return
		}
		t.connectProfile(content)
	})
	pd.Show()
}

func (t *MainWindow) loadProfileFromFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		dialog.ShowError(err, t.w)
		return
	}
	t.connectProfile(string(content))
}

// connectProfile loads the share tree for the given profile content
func (t *MainWindow) connectProfile(profile string) {
	t.SetStatus("Loading profile...")
	t.profile = profile

	go func() {
		if err := t.navTree.LoadShares(profile); err != nil {
			t.SetStatus("Error connecting to sharing server")
			fyne.Do(func() { dialog.ShowError(err, t.w) })
			return
		}
		fyne.Do(func() {
			t.tree.Refresh()
			t.tree.OpenAllBranches()
		})
		t.SetStatus("Profile loaded successfully")
	}()
}

// loadWithOptions opens the query options dialog for the selected table
func (t *MainWindow) loadWithOptions() {
	if t.selectedTable == nil {
		dialog.ShowInformation("Select a Table", "Please select a table in the sidebar first", t.w)
		return
	}
	table := *t.selectedTable
	ShowQueryOptionsDialogWithSchema(t.w, t.profile, table, func(options *QueryOptions) {
		t.SetStatus(fmt.Sprintf("Loading table with options: %s", table.Name))
		t.loadSelectedTable(options)
	})
}

// loadSelectedTable resolves the first data file of the selected table
// and hands it to the browser.
func (t *MainWindow) loadSelectedTable(options *QueryOptions) {
	if t.selectedTable == nil {
		return
	}
	table := *t.selectedTable

	go func() {
		ds, err := delta_sharing.NewSharingClientV2FromString(t.profile)
		if err != nil {
			fyne.Do(func() { dialog.ShowError(err, t.w) })
			return
		}

		ctx, cancel := apiTimeoutContext(t.apiTimeout)
		defer cancel()
		resp, err := ds.ListFilesInTable(ctx, table)
		if err != nil {
			fyne.Do(func() { dialog.ShowError(err, t.w) })
			return
		}
		if len(resp.AddFiles) == 0 {
			fyne.Do(func() { dialog.ShowError(fmt.Errorf("no files available for table %s", table.Name), t.w) })
			return
		}

		fileID := resp.AddFiles[0].Id
		t.browser.GetData(t.profile, table, fileID, options)
		t.SetStatus("Table loaded: " + table.Name)
	}()
}
