package model

// CriteriaItem 评分项，ID 作为评分 key，创建后永不复用
type CriteriaItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CriteriaSection 评分分组，保持插入顺序
type CriteriaSection struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Color string         `json:"color"`
	Items []CriteriaItem `json:"items"`
}

// Rubric 当前评分表（有序分组）
type Rubric []CriteriaSection

// ItemCount 评分项总数 N
func (r Rubric) ItemCount() int {
	n := 0
	for _, s := range r {
		n += len(s.Items)
	}
	return n
}

// ItemIDs 按顺序返回全部评分项 ID
func (r Rubric) ItemIDs() []string {
	ids := make([]string, 0, r.ItemCount())
	for _, s := range r {
		for _, it := range s.Items {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// FindSection 返回分组下标，不存在返回 -1
func (r Rubric) FindSection(id string) int {
	for i, s := range r {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// FindItem 返回评分项在分组中的下标，不存在返回 -1
func (s *CriteriaSection) FindItem(id string) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
