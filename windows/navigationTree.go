// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	delta_sharing "github.com/magpierre/go_delta_sharing_client"
)

// TreeNodeType represents the type of node in the navigation tree
type TreeNodeType string

const (
	NodeTypeShare  TreeNodeType = "share"
	NodeTypeSchema TreeNodeType = "schema"
	NodeTypeTable  TreeNodeType = "table"
)

// TreeNode represents a node in the navigation tree
type TreeNode struct {
	ID       string
	NodeType TreeNodeType
	Name     string
	Share    string
	Schema   string
	Table    delta_sharing.Table // Populated for table nodes only
	Children []string
}

// NavigationTree holds the share/schema/table hierarchy backing the
// sidebar tree widget.
type NavigationTree struct {
	nodes   map[string]*TreeNode
	rootIDs []string
	profile string
	client  delta_sharing.SharingClientV2
	mainWin *MainWindow
	mu      sync.RWMutex
}

// NewNavigationTree creates an empty navigation tree
func NewNavigationTree(mainWin *MainWindow) *NavigationTree {
	return &NavigationTree{
		nodes:   make(map[string]*TreeNode),
		rootIDs: make([]string, 0),
		mainWin: mainWin,
	}
}

// GenerateNodeID creates a unique ID for a tree node
func (nt *NavigationTree) GenerateNodeID(nodeType TreeNodeType, share, schema, table string) string {
	switch nodeType {
	case NodeTypeShare:
		return fmt.Sprintf("share:%s", share)
	case NodeTypeSchema:
		return fmt.Sprintf("share:%s:schema:%s", share, schema)
	case NodeTypeTable:
		return fmt.Sprintf("share:%s:schema:%s:table:%s", share, schema, table)
	default:
		return ""
	}
}

// ParseNodeID extracts components from a node ID
func (nt *NavigationTree) ParseNodeID(nodeID string) (nodeType TreeNodeType, share, schema, table string) {
	parts := strings.Split(nodeID, ":")

	if len(parts) >= 2 && parts[0] == "share" {
		nodeType = NodeTypeShare
		share = parts[1]
	}

	if len(parts) >= 4 && parts[2] == "schema" {
		nodeType = NodeTypeSchema
		schema = parts[3]
	}

	if len(parts) >= 6 && parts[4] == "table" {
		nodeType = NodeTypeTable
		table = parts[5]
	}

	return
}

// LoadShares rebuilds the tree from the sharing server. All tables are
// fetched up front with ListAllTables_V2, so expanding nodes later never
// touches the network.
func (nt *NavigationTree) LoadShares(profile string) error {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	nt.profile = profile

	client, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		return fmt.Errorf("failed to create sharing client: %w", err)
	}
	nt.client = client

	ctx, cancel := apiTimeoutContext(nt.mainWin.apiTimeout)
	defer cancel()
	shares, _, err := client.ListShares(ctx, 0, "")
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}

	nt.nodes = make(map[string]*TreeNode)
	nt.rootIDs = make([]string, 0, len(shares))

	shareMap := make(map[string]*TreeNode)
	for _, share := range shares {
		nodeID := nt.GenerateNodeID(NodeTypeShare, share.Name, "", "")
		node := &TreeNode{
			ID:       nodeID,
			NodeType: NodeTypeShare,
			Name:     share.Name,
			Share:    share.Name,
			Children: make([]string, 0),
		}
		nt.nodes[nodeID] = node
		nt.rootIDs = append(nt.rootIDs, nodeID)
		shareMap[share.Name] = node
	}

	// maxConcurrency=0 uses the client default
	ctx2, cancel2 := apiTimeoutContext(nt.mainWin.apiTimeout)
	defer cancel2()
	allTables, _, err := client.ListAllTables_V2(ctx2, 0, "", 0)
	if err != nil {
		return fmt.Errorf("failed to list all tables: %w", err)
	}

	schemaMap := make(map[string]*TreeNode)

	for _, table := range allTables {
		shareNode, shareExists := shareMap[table.Share]
		if !shareExists {
			// ListAllTables can surface shares ListShares did not
			shareNodeID := nt.GenerateNodeID(NodeTypeShare, table.Share, "", "")
			shareNode = &TreeNode{
				ID:       shareNodeID,
				NodeType: NodeTypeShare,
				Name:     table.Share,
				Share:    table.Share,
				Children: make([]string, 0),
			}
			nt.nodes[shareNodeID] = shareNode
			nt.rootIDs = append(nt.rootIDs, shareNodeID)
			shareMap[table.Share] = shareNode
		}

		schemaNodeID := nt.GenerateNodeID(NodeTypeSchema, table.Share, table.Schema, "")
		schemaNode, schemaExists := schemaMap[schemaNodeID]
		if !schemaExists {
			schemaNode = &TreeNode{
				ID:       schemaNodeID,
				NodeType: NodeTypeSchema,
				Name:     table.Schema,
				Share:    table.Share,
				Schema:   table.Schema,
				Children: make([]string, 0),
			}
			nt.nodes[schemaNodeID] = schemaNode
			schemaMap[schemaNodeID] = schemaNode
			shareNode.Children = append(shareNode.Children, schemaNodeID)
		}

		tableNodeID := nt.GenerateNodeID(NodeTypeTable, table.Share, table.Schema, table.Name)
		nt.nodes[tableNodeID] = &TreeNode{
			ID:       tableNodeID,
			NodeType: NodeTypeTable,
			Name:     table.Name,
			Share:    table.Share,
			Schema:   table.Schema,
			Table:    table,
		}
		schemaNode.Children = append(schemaNode.Children, tableNodeID)
	}

	return nil
}

// GetChildren returns the child node IDs for a given parent node.
// Returns root nodes if nodeID is empty.
func (nt *NavigationTree) GetChildren(nodeID widget.TreeNodeID) []widget.TreeNodeID {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	if nodeID == "" {
		return nt.rootIDs
	}

	node, exists := nt.nodes[nodeID]
	if !exists {
		return []widget.TreeNodeID{}
	}

	return node.Children
}

// IsBranch returns true if the node can have children
func (nt *NavigationTree) IsBranch(nodeID widget.TreeNodeID) bool {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	if nodeID == "" {
		return true
	}

	node, exists := nt.nodes[nodeID]
	if !exists {
		return false
	}

	return node.NodeType == NodeTypeShare || node.NodeType == NodeTypeSchema
}

// GetNode retrieves a node by ID
func (nt *NavigationTree) GetNode(nodeID widget.TreeNodeID) *TreeNode {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	return nt.nodes[nodeID]
}

// UpdateNodeDisplay updates the icon and label of a rendered tree node
func (nt *NavigationTree) UpdateNodeDisplay(nodeID widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
	node := nt.GetNode(nodeID)
	if node == nil {
		return
	}

	box, ok := obj.(*fyne.Container)
	if !ok || len(box.Objects) < 2 {
		return
	}

	icon, ok := box.Objects[0].(*widget.Icon)
	if ok {
		switch node.NodeType {
		case NodeTypeShare:
			icon.SetResource(theme.FolderOpenIcon())
		case NodeTypeSchema:
			icon.SetResource(theme.FolderIcon())
		case NodeTypeTable:
			icon.SetResource(theme.DocumentIcon())
		}
	}

	label, ok := box.Objects[1].(*widget.Label)
	if ok {
		label.SetText(node.Name)
	}
}
