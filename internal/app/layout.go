package app

// columnWidths splits the terminal into the left column (commits + file
// tree) and the diff column. Widths are content widths; each bordered pane
// adds two columns of overhead, three total because the columns share an
// edge visually but not structurally.
func columnWidths(totalWidth, desiredLeft int) (int, int) {
	available := totalWidth - 4
	if available < 2 {
		return 1, 1
	}

	left := desiredLeft
	if left < 1 {
		left = 1
	}
	if left > available/2 {
		left = available / 2
	}
	right := available - left
	if right < 1 {
		right = 1
		left = available - right
	}
	return left, right
}

// leftColumnHeights splits the left column between the commit pane and the
// file tree pane, commits taking roughly a third. Heights are content
// heights; borders add two rows each.
func leftColumnHeights(totalHeight int) (int, int) {
	available := totalHeight - 4
	if available < 2 {
		return 1, 1
	}
	commits := available / 3
	if commits < 1 {
		commits = 1
	}
	files := available - commits
	if files < 1 {
		files = 1
		commits = available - files
	}
	return commits, files
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
