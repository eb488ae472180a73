package dataset

// ── Field alias tables ─────────────────────────────────────
// Column names drift between yearly exports of the same dataset. Each logical
// field lists the column names it has been published under, most likely
// first. Record.Pick takes the first non-empty one.

// Field is one logical output column and its source aliases.
type Field struct {
	Name    string
	Aliases []string
}

// RawRowKey holds the unmodified source row in every result item.
const RawRowKey = "資料列原始"

// ESG human-development dataset (t187ap46_O_5).
var (
	esgCompanyName = []string{"公司名稱", "公司", "公司名稱(中)", "company", "CompanyName"}
	esgYear        = []string{"申報年度", "年度", "Year", "year", "報告年度"}

	esgFields = []Field{
		{Name: "公司代號", Aliases: []string{"公司代號", "股票代號", "StockCode"}},
		{Name: "公司名稱", Aliases: esgCompanyName},
		{Name: "年度", Aliases: esgYear},
		{Name: "員工薪資中位數", Aliases: []string{
			"員工薪資中位數",
			"薪資中位數",
			"MedianSalary",
			"薪資中位",
			"非擔任主管之全時員工薪資中位數(仟元/人)",
		}},
		{Name: "員工薪資平均數", Aliases: []string{
			"員工薪資平均數",
			"薪資平均數",
			"AverageSalary",
			"薪資平均",
			"員工薪資平均數(仟元/人)",
		}},
		{Name: "女性主管比例", Aliases: []string{
			"女性主管比例",
			"女性主管比",
			"FemaleManagerRatio",
			"管理職女性主管佔比",
		}},
	}
)

// Labor Standards Act and Gender Equality in Employment Act violation lists
// share one layout.
var (
	violationCompanyName = []string{"事業單位名稱或負責人", "事業單位名稱", "雇主名稱", "公司名稱", "name"}
	violationDate        = []string{"公告日期", "公布日期", "處分日期", "date", "公告日"}

	violationFields = []Field{
		{Name: "事業單位名稱", Aliases: violationCompanyName},
		{Name: "公告日期", Aliases: violationDate},
		{Name: "裁處機關", Aliases: []string{"主管機關", "裁處機關", "機關"}},
		{Name: "違反法條", Aliases: []string{"違法法規法條", "違反法條", "法條"}},
		{Name: "違反法條內容", Aliases: []string{"違反法規內容", "違反法條內容", "違規內容", "事實摘要"}},
		{Name: "罰鍰金額", Aliases: []string{"罰鍰金額", "處分金額", "金額"}},
	}
)
