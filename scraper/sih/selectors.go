package sih

// Selectors and locators for the DataTables layout of the problem statement page.
// Keeping them together makes layout changes a one-file edit.

// tableSelectors identify the data table, most specific first.
var tableSelectors = []string{
	`table#dataTablePS`,
	`table#dataTable`,
	`table.dataTable`,
}

// rowSelectors identify data rows inside the table. Newer DataTables builds
// stopped emitting role="row", hence the plain fallback.
var rowSelectors = []string{
	`tbody tr[role='row']`,
	`tbody tr`,
}

const (
	cellSelector = `td`
	infoSelector = `.dataTables_info`
)

// nextLocators find the "Next" pagination control, tried in order.
var nextLocators = []Locator{
	{Name: "direct", Kind: ByCSS, Expr: `#dataTable_next, #dataTablePS_next`},
	{Name: "structural", Kind: ByXPath, Expr: `//li[@id='dataTable_next' or @id='dataTablePS_next']/a`},
	{Name: "link text", Kind: ByXPath, Expr: `//a[normalize-space(.)='Next']`},
	{Name: "attribute", Kind: ByCSS, Expr: `[aria-controls][data-dt-idx='next'], li.next > a.page-link[aria-controls]`},
}

// JS predicates polled by the chromedp session.
const (
	tableReadyJS = `document.querySelector("table#dataTablePS tbody tr, table#dataTable tbody tr, table.dataTable tbody tr") !== null`

	processingDoneJS = `(function() {
		var el = document.querySelector('.dataTables_processing, .dt-processing');
		if (!el) return true;
		var style = window.getComputedStyle(el);
		return style.display === 'none' || style.visibility === 'hidden' || el.offsetParent === null;
	})()`

	pageSizeJS = `(function(size) {
		var sel = document.querySelector("select[name='dataTablePS_length'], select[name='dataTable_length'], select[name$='_length']");
		if (!sel) return false;
		var found = false;
		for (var i = 0; i < sel.options.length; i++) {
			if (sel.options[i].value === size) { found = true; break; }
		}
		if (!found) return false;
		sel.value = size;
		sel.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})(%s)`
)

// ellipsisMarkers are placeholder cells DataTables renders for truncated content.
var ellipsisMarkers = map[string]struct{}{
	"…":   {},
	"...": {},
}

const (
	minCells       = 6
	psNumberColumn = 4
)
