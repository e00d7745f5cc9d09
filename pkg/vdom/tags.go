package vdom

import "strings"

// Element namespaces.
const (
	NamespaceSVG  = "svg"
	NamespaceMath = "math"
)

var htmlTags = makeSet(
	"html,body,base,head,link,meta,style,title," +
		"address,article,aside,footer,header,h1,h2,h3,h4,h5,h6,hgroup,nav,section," +
		"div,dd,dl,dt,figcaption,figure,picture,hr,img,li,main,ol,p,pre,ul," +
		"a,b,abbr,bdi,bdo,br,cite,code,data,dfn,em,i,kbd,mark,q,rp,rt,rtc,ruby," +
		"s,samp,small,span,strong,sub,sup,time,u,var,wbr,area,audio,map,track,video," +
		"embed,object,param,source,canvas,script,noscript,del,ins," +
		"caption,col,colgroup,table,thead,tbody,td,th,tr," +
		"button,datalist,fieldset,form,input,label,legend,meter,optgroup,option," +
		"output,progress,select,textarea," +
		"details,dialog,menu,menuitem,summary," +
		"content,element,shadow,template,blockquote,iframe,tfoot")

var svgTags = makeSet(
	"svg,animate,circle,clippath,cursor,defs,desc,ellipse,filter,font-face," +
		"foreignobject,g,glyph,image,line,marker,mask,missing-glyph,path,pattern," +
		"polygon,polyline,rect,switch,symbol,text,textpath,tspan,use,view")

// Built-in tags that are never reported as unknown.
var builtinTags = makeSet("slot,component")

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = makeSet("area,base,br,col,embed,hr,img,input,link,meta,param,source,track,wbr")

func makeSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, s := range strings.Split(list, ",") {
		set[s] = true
	}
	return set
}

// IsHTMLTag reports whether tag is a standard HTML element.
func IsHTMLTag(tag string) bool { return htmlTags[tag] }

// IsSVGTag reports whether tag is an SVG element.
func IsSVGTag(tag string) bool { return svgTags[strings.ToLower(tag)] }

// IsReservedTag reports whether tag is a platform element rather than a
// component or custom element.
func IsReservedTag(tag string) bool {
	return htmlTags[tag] || svgTags[strings.ToLower(tag)]
}

// IsUnknownElement reports whether tag is neither a platform element nor a
// built-in tag. Hosts without custom element registries treat every
// hyphenated tag as unknown.
func IsUnknownElement(tag string) bool {
	tag = strings.ToLower(tag)
	return !IsReservedTag(tag) && !builtinTags[tag]
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool { return voidElements[tag] }

// NamespaceOf returns the namespace an element tag is created in, or "".
func NamespaceOf(tag string) string {
	switch {
	case IsSVGTag(tag):
		return NamespaceSVG
	case tag == "math":
		return NamespaceMath
	}
	return ""
}
